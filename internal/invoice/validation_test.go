package invoice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invoicer/pkg/models"
)

func completeInvoice(t *testing.T) models.Invoice {
	t.Helper()
	f := newTestFactory()
	inv, err := f.Editor().ApplyAll(f.NewDraft(),
		SetField{Field: FieldSubject, Value: "Maintenance"},
		SetField{Field: FieldCompanyName, Value: "Atlas SARL"},
		SetField{Field: FieldCompanyAddress, Value: "12 rue Didouche Mourad\nAlger"},
		SetField{Field: FieldClientName, Value: "Client SPA"},
		SetField{Field: FieldClientAddress, Value: "Oran"},
		UpdateItem{ID: "item-1", Field: ItemDescription, Value: "Support"},
	)
	require.NoError(t, err)
	return inv
}

func TestValidate_CompleteInvoice(t *testing.T) {
	assert.NoError(t, Validate(completeInvoice(t)))
}

func TestValidate_DraftReportsEveryMissingField(t *testing.T) {
	err := Validate(newTestFactory().NewDraft())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInvoice))

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{
		"subject", "company_name", "company_address", "client_name", "client_address",
		"items[0].description",
	}, verrs.Fields())
}

func TestValidate_NotesAreOptional(t *testing.T) {
	inv := completeInvoice(t)
	inv.Notes = ""
	assert.NoError(t, Validate(inv))
}

func TestValidate_DueDateBeforeDate(t *testing.T) {
	inv := completeInvoice(t)
	inv.Date = "2025-03-14"
	inv.DueDate = "2025-03-13"

	err := Validate(inv)
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"due_date"}, verrs.Fields())
	assert.Contains(t, err.Error(), "must not be before")
}

func TestValidate_SameDayDueDateIsAllowed(t *testing.T) {
	inv := completeInvoice(t)
	inv.DueDate = inv.Date
	assert.NoError(t, Validate(inv))
}

func TestValidate_MalformedDates(t *testing.T) {
	inv := completeInvoice(t)
	inv.Date = "14/03/2025"
	inv.DueDate = ""

	var verrs ValidationErrors
	require.ErrorAs(t, Validate(inv), &verrs)
	assert.Equal(t, []string{"date", "due_date"}, verrs.Fields())
}

func TestValidate_NoItems(t *testing.T) {
	inv := completeInvoice(t)
	inv.Items = nil

	var verrs ValidationErrors
	require.ErrorAs(t, Validate(inv), &verrs)
	assert.Equal(t, []string{"items"}, verrs.Fields())
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("subject", "", "is required")
	assert.ErrorIs(t, err, ErrInvalidInvoice)
	assert.Equal(t, "validation error for field 'subject': is required (value: )", err.Error())
}
