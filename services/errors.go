package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ValidationError carries field-level messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

// notFound maps gorm's missing-row error onto ErrNotFound and passes everything else through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// requireRef checks that a referenced row exists, reporting a field error otherwise.
func requireRef(tx *gorm.DB, model interface{}, id uint, field string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fieldError(field, invalidChoice)
	}
	return nil
}

func optionalRef(tx *gorm.DB, model interface{}, id *uint, field string) error {
	if id == nil {
		return nil
	}
	return requireRef(tx, model, *id, field)
}

func prefixFields(verr *ValidationError, prefix string) *ValidationError {
	fields := make(map[string]string, len(verr.Fields))
	for k, v := range verr.Fields {
		fields[prefix+k] = v
	}
	return &ValidationError{Fields: fields}
}
