package invoice

import (
	"fmt"
	"strings"
	"time"

	"invoicer/pkg/models"
)

// Validate checks that a snapshot is complete enough to be submitted.
//
// Editing never calls Validate: normalization already keeps numbers valid
// mid-edit, and text fields may legitimately be empty while the user types.
// Validate adds the submission rules on top:
//   - invoice number, subject, company and client name/address are required
//   - every line item needs a description
//   - date and due date must be YYYY-MM-DD and the due date may not precede the date
//
// The returned error is a ValidationErrors listing every failing field, and
// matches ErrInvalidInvoice.
func Validate(inv models.Invoice) error {
	var errs ValidationErrors

	required := []struct {
		field Field
		value string
	}{
		{FieldInvoiceNumber, inv.InvoiceNumber},
		{FieldSubject, inv.Subject},
		{FieldCompanyName, inv.CompanyName},
		{FieldCompanyAddress, inv.CompanyAddress},
		{FieldClientName, inv.ClientName},
		{FieldClientAddress, inv.ClientAddress},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, NewValidationError(string(r.field), r.value, "is required"))
		}
	}

	date, dateErr := time.Parse(models.DateLayout, inv.Date)
	if dateErr != nil {
		errs = append(errs, NewValidationError(string(FieldDate), inv.Date, "must be a YYYY-MM-DD date"))
	}
	due, dueErr := time.Parse(models.DateLayout, inv.DueDate)
	if dueErr != nil {
		errs = append(errs, NewValidationError(string(FieldDueDate), inv.DueDate, "must be a YYYY-MM-DD date"))
	}
	if dateErr == nil && dueErr == nil && due.Before(date) {
		errs = append(errs, NewValidationError(string(FieldDueDate), inv.DueDate, "must not be before the invoice date "+inv.Date))
	}

	if len(inv.Items) == 0 {
		errs = append(errs, NewValidationError("items", 0, "at least one line item is required"))
	}
	for i, item := range inv.Items {
		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, NewValidationError(fmt.Sprintf("items[%d].description", i), item.Description, "is required"))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
