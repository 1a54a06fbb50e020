package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// ErrNotObject is returned when a stored document is not a JSON object.
var ErrNotObject = errors.New("snapshot is not a JSON object")

// Encode serializes a snapshot as indented JSON.
func Encode(snap *models.Snapshot) ([]byte, error) {
	const op = "store.Encode"

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Decode parses a stored snapshot. Only a document that is not a JSON object
// is an error. Everything below the top level is repaired: non-array
// invoices or clients become empty, unreadable records are skipped and
// missing settings take their defaults.
func Decode(data []byte) (*models.Snapshot, error) {
	const op = "store.Decode"
	log := logger.WithComponent("store")

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrNotObject, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotObject)
	}

	snap := models.NewSnapshot()
	snap.Invoices = decodeList[models.Invoice](log, "invoices", top["invoices"])
	snap.Clients = decodeList[models.Client](log, "clients", top["clients"])
	snap.Settings = decodeSettings(log, top["settings"])
	return snap, nil
}

func decodeList[T any](log zerolog.Logger, field string, raw json.RawMessage) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		log.Warn().Str("field", field).Err(err).Msg("Stored field is not an array, using empty list")
		return out
	}

	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			log.Warn().Str("field", field).Int("index", i).Err(err).Msg("Skipping unreadable stored record")
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeSettings decodes each settings section over its defaults, so one
// damaged section does not reset the others.
func decodeSettings(log zerolog.Logger, raw json.RawMessage) models.Settings {
	settings := models.DefaultSettings()
	if len(raw) == 0 {
		return settings
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil || sections == nil {
		log.Warn().Err(err).Msg("Stored settings are not an object, using defaults")
		return settings
	}

	targets := map[string]interface{}{
		"profile": &settings.Profile,
		"payment": &settings.Payment,
		"invoice": &settings.Invoice,
		"app":     &settings.App,
	}
	for name, target := range targets {
		section, ok := sections[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(section, target); err != nil {
			log.Warn().Str("section", name).Err(err).Msg("Stored settings section is damaged, keeping what could be read")
		}
	}

	if settings.Invoice.NextNumber < 1 {
		log.Warn().Int64("next_number", settings.Invoice.NextNumber).Msg("Invalid invoice counter, resetting to 1")
		settings.Invoice.NextNumber = 1
	}
	return settings
}
