package cmd

import (
	"fmt"
	"strings"

	"invoicer/internal/draft"
	"invoicer/internal/invoice"
)

// parseSet parses a --set value of the form field=value.
func parseSet(raw string) (invoice.Edit, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return nil, fmt.Errorf("--set %q: expected field=value", raw)
	}
	field, err := invoice.ParseField(name)
	if err != nil {
		return nil, err
	}
	return invoice.SetField{Field: field, Value: value}, nil
}

func parseSets(raws []string) ([]invoice.Edit, error) {
	edits := make([]invoice.Edit, 0, len(raws))
	for _, raw := range raws {
		e, err := parseSet(raw)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// parseItem parses "description;quantity;price". Quantity and price are
// optional and keep their defaults when left out.
func parseItem(raw string) draft.Item {
	parts := strings.SplitN(raw, ";", 3)
	item := draft.Item{Description: strings.TrimSpace(parts[0])}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		item.Quantity = draft.Raw{Value: parts[1], Set: true}
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		item.UnitPrice = draft.Raw{Value: parts[2], Set: true}
	}
	return item
}

// parseItemUpdate parses an --update-item value of the form id:field=value.
func parseItemUpdate(raw string) (invoice.UpdateItem, error) {
	id, rest, ok := strings.Cut(raw, ":")
	if !ok || id == "" {
		return invoice.UpdateItem{}, fmt.Errorf("--update-item %q: expected id:field=value", raw)
	}
	name, value, ok := strings.Cut(rest, "=")
	if !ok {
		return invoice.UpdateItem{}, fmt.Errorf("--update-item %q: expected id:field=value", raw)
	}
	field, err := invoice.ParseItemField(name)
	if err != nil {
		return invoice.UpdateItem{}, err
	}
	return invoice.UpdateItem{ID: id, Field: field, Value: value}, nil
}
