package enrollment

import (
	"errors"
	"time"

	roadmapModels "lms/models/roadmap"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueCertificate issues a completion certificate for the roadmap. The
// enrollment must be completed; repeated requests return the existing
// certificate instead of issuing a second one.
func (s *Service) IssueCertificate(userID, roadmapID uint) (*roadmapModels.Certificate, error) {
	var cert roadmapModels.Certificate

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var enr roadmapModels.Enrollment
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}
		if !enr.IsCompleted {
			return ErrNotCompleted
		}

		err := tx.Where("user_id = ? AND roadmap_id = ? AND is_deleted = ?",
			userID, roadmapID, false).First(&cert).Error
		if err == nil {
			return nil // already issued
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cert = roadmapModels.Certificate{
			UserID:       userID,
			RoadmapID:    roadmapID,
			SerialNumber: uuid.NewString(),
			IssuedAt:     time.Now(),
		}
		return tx.Create(&cert).Error
	})
	if err != nil {
		return nil, err
	}

	return &cert, nil
}

// ListCertificates returns every certificate issued to the user.
func (s *Service) ListCertificates(userID uint) ([]roadmapModels.Certificate, error) {
	var certs []roadmapModels.Certificate
	err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certs).Error
	if err != nil {
		return nil, err
	}
	return certs, nil
}
