package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificateRequiresCompletion(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 1)

	_, err := svc.IssueCertificate(user.ID, rm.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestIssueCertificateIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 1)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(100), true)
	require.NoError(t, err)

	first, err := svc.IssueCertificate(user.ID, rm.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first.SerialNumber)

	second, err := svc.IssueCertificate(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, first.SerialNumber, second.SerialNumber)

	certs, err := svc.ListCertificates(user.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestIssueCertificateNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "nocert@example.com")

	_, err := svc.IssueCertificate(user.ID, 123)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
