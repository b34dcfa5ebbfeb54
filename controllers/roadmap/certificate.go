package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	roadmapModels "lms/models/roadmap"
	"lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate issues a completion certificate for a finished roadmap
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	cert, err := svc.IssueCertificate(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	go func(user models.User, cert roadmapModels.Certificate) {
		var rm roadmapModels.Roadmap
		if err := database.Database.Db.First(&rm, cert.RoadmapID).Error; err != nil {
			return
		}
		if err := utils.SendCertificateEmail(user.Email, user.Name, rm.Title, cert.SerialNumber); err != nil {
			log.Printf("Error sending certificate email to %s: %v", user.Email, err)
		}
	}(user, *cert)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", cert)
}

// GetUserCertificates lists the user's issued certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	certs, err := svc.ListCertificates(userID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certs,
		"total":        len(certs),
	})
}
