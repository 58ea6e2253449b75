package handlers

import (
	"log"

	"github.com/anjiri1684/car_rental/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// renderDomainError turns a typed engine error into a JSON response. Anything
// else is an internal failure: logged in full, returned as a generic message.
func renderDomainError(c *fiber.Ctx, err error) error {
	if domainErr, ok := services.AsDomainError(err); ok {
		return c.Status(domainErrStatus(domainErr)).JSON(fiber.Map{
			"error": domainErr.Message,
			"code":  domainErr.Code,
		})
	}

	log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong, please try again.",
	})
}

func domainErrStatus(err *services.DomainError) int {
	switch err.Code {
	case services.ErrCodeValidation, services.ErrCodeInvalidCode,
		services.ErrCodeMinimumNotMet, services.ErrCodePaymentVerification:
		return fiber.StatusBadRequest
	case services.ErrCodeNotFound:
		return fiber.StatusNotFound
	case services.ErrCodeConflict, services.ErrCodeAlreadyPaid:
		return fiber.StatusConflict
	case services.ErrCodeApprovalRequired:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
