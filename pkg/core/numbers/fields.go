package numbers

import (
	"math"
	"strings"
)

// Field identifies one raw input of the model. Field access is an explicit
// switch over the enumeration rather than reflection so that adding a field
// is a compile-checked change in one file.
type Field string

const (
	FieldPrecioVenta            Field = "precio_venta"
	FieldImpuestosPct           Field = "impuestos_pct"
	FieldProjectMgmtFees        Field = "project_mgmt_fees"
	FieldTerrenosCoste          Field = "terrenos_coste"
	FieldProjectManagementCoste Field = "project_management_coste"
	FieldAcometidas             Field = "acometidas"
	FieldCostesConstruccion     Field = "costes_construccion"
	FieldTotalPagado            Field = "total_pagado"
	FieldTerrenoUrbano          Field = "terreno_urbano"
	FieldTerrenoRustico         Field = "terreno_rustico"
	FieldSuperficieM2           Field = "superficie_m2"
)

// AllFields lists every input field in canonical order. Validator output
// ordering follows this list.
var AllFields = []Field{
	FieldPrecioVenta,
	FieldImpuestosPct,
	FieldProjectMgmtFees,
	FieldTerrenosCoste,
	FieldProjectManagementCoste,
	FieldAcometidas,
	FieldCostesConstruccion,
	FieldTotalPagado,
	FieldTerrenoUrbano,
	FieldTerrenoRustico,
	FieldSuperficieM2,
}

// costFields are the five components summed into costes_totales.
var costFields = []Field{
	FieldProjectMgmtFees,
	FieldTerrenosCoste,
	FieldProjectManagementCoste,
	FieldAcometidas,
	FieldCostesConstruccion,
}

// ParseField maps a wire name like "precio_venta" onto a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFields {
		if f == known {
			return f, nil
		}
	}
	return "", &ValidationError{Fields: []string{s}, Reason: "unknown field"}
}

// Get returns the value of the named field, nil when absent.
func (m InputModel) Get(f Field) *float64 {
	switch f {
	case FieldPrecioVenta:
		return m.PrecioVenta
	case FieldImpuestosPct:
		return m.ImpuestosPct
	case FieldProjectMgmtFees:
		return m.ProjectMgmtFees
	case FieldTerrenosCoste:
		return m.TerrenosCoste
	case FieldProjectManagementCoste:
		return m.ProjectManagementCoste
	case FieldAcometidas:
		return m.Acometidas
	case FieldCostesConstruccion:
		return m.CostesConstruccion
	case FieldTotalPagado:
		return m.TotalPagado
	case FieldTerrenoUrbano:
		return m.TerrenoUrbano
	case FieldTerrenoRustico:
		return m.TerrenoRustico
	case FieldSuperficieM2:
		return m.SuperficieM2
	}
	return nil
}

// With returns a copy of the model with the named field replaced. The
// receiver is untouched: pointers are swapped, never written through, so a
// baseline stays safe to share across concurrent scenario runs.
func (m InputModel) With(f Field, v float64) InputModel {
	switch f {
	case FieldPrecioVenta:
		m.PrecioVenta = &v
	case FieldImpuestosPct:
		m.ImpuestosPct = &v
	case FieldProjectMgmtFees:
		m.ProjectMgmtFees = &v
	case FieldTerrenosCoste:
		m.TerrenosCoste = &v
	case FieldProjectManagementCoste:
		m.ProjectManagementCoste = &v
	case FieldAcometidas:
		m.Acometidas = &v
	case FieldCostesConstruccion:
		m.CostesConstruccion = &v
	case FieldTotalPagado:
		m.TotalPagado = &v
	case FieldTerrenoUrbano:
		m.TerrenoUrbano = &v
	case FieldTerrenoRustico:
		m.TerrenoRustico = &v
	case FieldSuperficieM2:
		m.SuperficieM2 = &v
	}
	return m
}

// CheckMalformed fails fast on structurally broken input: NaN or Inf where
// a number is expected. Missing values and out-of-policy values are fine
// here; those are the Validator's business.
func CheckMalformed(m InputModel) error {
	var bad []string
	for _, f := range AllFields {
		if v := m.Get(f); v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			bad = append(bad, string(f))
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad, Reason: "non-finite value"}
	}
	return nil
}
