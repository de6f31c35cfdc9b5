package store

import (
	"context"
	"fmt"
	"math"
)

// SetCPF stores a normalized national identifier on one figure.
func SetCPF(ctx context.Context, w Writer, politicoID int64, cpf string) error {
	if cpf == "" {
		return fmt.Errorf("empty cpf: %w", ErrValidation)
	}
	n, err := w.UpdateField(ctx, CollectionPoliticos, []Filter{Eq("id", politicoID)}, "cpf", cpf)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("politico %d: %w", politicoID, ErrNotFound)
	}
	return nil
}

// Bounds of a source's reliability weight.
const (
	PesoMin = 0.0
	PesoMax = 2.0
)

// SetFontePeso updates the reliability weight of one news source.
func SetFontePeso(ctx context.Context, w Writer, fonteID string, peso float64) error {
	if fonteID == "" {
		return fmt.Errorf("empty fonte id: %w", ErrValidation)
	}
	if math.IsNaN(peso) || peso < PesoMin || peso > PesoMax {
		return fmt.Errorf("peso %v outside [%v, %v]: %w", peso, PesoMin, PesoMax, ErrValidation)
	}
	n, err := w.UpdateField(ctx, CollectionFontes, []Filter{Eq("id", fonteID)}, "peso_confiabilidade", peso)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("fonte %s: %w", fonteID, ErrNotFound)
	}
	return nil
}
