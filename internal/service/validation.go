package service

import (
	"strings"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
)

// ValidateCheckout rejects a checkout request before any external call is
// made: the cart must be non-empty and every customer field present.
func ValidateCheckout(items []models.CartItem, customer *models.Customer) error {
	if len(items) == 0 {
		return apperrors.NewValidationError("items", "cart is empty")
	}

	for _, item := range items {
		if item.ProductID == "" {
			return apperrors.NewValidationError("items", "product ID is required for item")
		}
		if item.Quantity < 1 {
			return apperrors.NewValidationError("items", "quantity must be at least 1")
		}
		if item.UnitPrice < 0 {
			return apperrors.NewValidationError("items", "unit price cannot be negative")
		}
	}

	return validateCustomer(customer)
}

func validateCustomer(customer *models.Customer) error {
	if customer == nil {
		return apperrors.NewValidationError("customer", "customer details are required")
	}
	if strings.TrimSpace(customer.Name) == "" {
		return apperrors.NewValidationError("customer.name", "name is required")
	}
	if strings.TrimSpace(customer.Email) == "" {
		return apperrors.NewValidationError("customer.email", "email is required")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return apperrors.NewValidationError("customer.phone", "phone is required")
	}
	if strings.TrimSpace(customer.Address) == "" {
		return apperrors.NewValidationError("customer.address", "address is required")
	}
	return nil
}

// ValidateStatusUpdate checks an admin status transition request.
func ValidateStatusUpdate(req *models.UpdateOrderStatusRequest) error {
	if req.Status == "" {
		return apperrors.NewValidationError("status", "status is required")
	}
	if !req.Status.IsValid() {
		return apperrors.NewValidationError("status", "invalid order status")
	}
	return nil
}

// ValidateContactMessage checks a contact form submission.
func ValidateContactMessage(msg *models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(msg.Email) == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return apperrors.NewValidationError("subject", "subject is required")
	}
	if strings.TrimSpace(msg.Body) == "" {
		return apperrors.NewValidationError("message", "message is required")
	}
	return nil
}

// ValidateSignup checks a new account request.
func ValidateSignup(req *models.SignupRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("email", "email is invalid")
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

// ValidateProduct checks an admin catalog write.
func ValidateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if p.Price < 0 {
		return apperrors.NewValidationError("price", "price cannot be negative")
	}
	return nil
}
