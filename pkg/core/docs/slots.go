// Package docs handles document classification and text extraction for a
// property's documents framework: proposing the group/subgroup/name slot
// for an upload, and turning HTML documents into plain text for QA
// snippet search.
package docs

import "strings"

// Slot is a cell of the documents framework.
type Slot struct {
	Group    string `json:"document_group"`
	Subgroup string `json:"document_subgroup"`
	Name     string `json:"document_name"`
}

// docGroups maps each framework slot to the keywords that suggest it.
// Group and subgroup are separated by a colon.
var docGroups = []struct {
	key      string
	keywords []string
}{
	{"Compra", []string{"escritura", "registro", "arras", "impuesto", "contrato privado", "itp", "iba"}},
	{"Reforma:Docs diseño", []string{"mapas", "planos", "arquitecto", "aparejador", "licencia"}},
	{"Reforma:Docs obra", []string{"constructor", "contrato constructor"}},
	{"Reforma:Docs facturas", []string{"factura", "fontaneria", "electricista", "calefaccion", "carpinteria", "diseño"}},
	{"Reforma:Docs registro obra nueva", []string{"registro documento", "documento de impuestos"}},
	{"Venta", []string{"certificacion"}},
}

// ProposeSlot guesses the framework slot for a file from its name and an
// optional text hint. The first group with any keyword hit wins; with no
// hit the default purchase slot comes back, for the user to correct.
func ProposeSlot(filename, textHint string) Slot {
	fn := strings.ToLower(filename)
	hint := strings.ToLower(textHint)

	for _, g := range docGroups {
		matched := ""
		for _, kw := range g.keywords {
			if strings.Contains(fn, kw) || strings.Contains(hint, kw) {
				matched = kw
				break
			}
		}
		if matched == "" {
			continue
		}
		parts := strings.SplitN(g.key, ":", 2)
		slot := Slot{Group: parts[0], Name: "Documento"}
		if len(parts) > 1 {
			slot.Subgroup = parts[1]
		}
		// Prefer a name taken from the filename itself.
		for _, kw := range g.keywords {
			if strings.Contains(fn, kw) {
				slot.Name = strings.ToUpper(kw[:1]) + kw[1:]
				break
			}
		}
		return slot
	}

	return Slot{Group: "Compra", Name: "Contrato privado"}
}
