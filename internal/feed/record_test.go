package feed

import (
	"encoding/json"
	"testing"

	"github.com/passosperdidos/parlamento-backend/internal/logger"
)

func testLogger() *logger.Logger { return logger.NewNop() }

func TestTextTolerance(t *testing.T) {
	var rec struct {
		A Text `json:"a"`
		B Text `json:"b"`
		C Text `json:"c"`
		D Text `json:"d"`
		E Text `json:"e"`
	}
	raw := `{"a": "texto", "b": 42, "c": null, "d": {"nested": true}, "e": true}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.A != "texto" {
		t.Fatalf("string field: %q", rec.A)
	}
	if rec.B != "42" {
		t.Fatalf("number field: %q", rec.B)
	}
	if rec.C != "" {
		t.Fatalf("null field: %q", rec.C)
	}
	if rec.D != "" {
		t.Fatalf("object field should collapse: %q", rec.D)
	}
	if rec.E != "true" {
		t.Fatalf("bool field: %q", rec.E)
	}
}

func TestManyListOrObject(t *testing.T) {
	var a, b, c, d struct {
		Items Many[GroupAuthor] `json:"items"`
	}
	if err := json.Unmarshal([]byte(`{"items": [{"GP": "PS"}, {"GP": "PSD"}]}`), &a); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(a.Items) != 2 || a.Items[1].GP != "PSD" {
		t.Fatalf("list decoded wrong: %+v", a.Items)
	}
	if err := json.Unmarshal([]byte(`{"items": {"GP": "PCP"}}`), &b); err != nil {
		t.Fatalf("single object: %v", err)
	}
	if len(b.Items) != 1 || b.Items[0].GP != "PCP" {
		t.Fatalf("single object decoded wrong: %+v", b.Items)
	}
	if err := json.Unmarshal([]byte(`{"items": null}`), &c); err != nil {
		t.Fatalf("null: %v", err)
	}
	if c.Items != nil {
		t.Fatalf("null should be empty: %+v", c.Items)
	}
	// A bad element is dropped, not fatal.
	if err := json.Unmarshal([]byte(`{"items": [{"GP": "BE"}, "stray string"]}`), &d); err != nil {
		t.Fatalf("mixed list: %v", err)
	}
	if len(d.Items) != 1 || d.Items[0].GP != "BE" {
		t.Fatalf("bad element not dropped: %+v", d.Items)
	}
}

func TestApprovedTextStringForm(t *testing.T) {
	var ev struct {
		Textos Many[ApprovedTextRecord] `json:"TextosAprovados"`
	}
	raw := `{"TextosAprovados": [{"titulo": "Texto final", "tipo": "DL"}, "Texto avulso sem objeto"]}`
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ev.Textos) != 2 {
		t.Fatalf("want 2 approved texts, got %d", len(ev.Textos))
	}
	if ev.Textos[0].Titulo != "Texto final" || ev.Textos[0].Tipo != "DL" {
		t.Fatalf("object form wrong: %+v", ev.Textos[0])
	}
	if ev.Textos[1].Titulo != "Texto avulso sem objeto" || ev.Textos[1].Tipo != "Unknown" {
		t.Fatalf("string form wrong: %+v", ev.Textos[1])
	}
}

func TestRecordDecode(t *testing.T) {
	raw := `{
		"IniId": "121452",
		"IniNr": 13,
		"IniTitulo": "Altera o regime",
		"IniEventos": {"Fase": "Entrada", "DataFase": "2024-03-15"},
		"IniAutorOutros": {"nome": "Governo", "sigla": "GOV"},
		"IniciativasEuropeias": [{"id": "e1"}]
	}`
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.IniID != "121452" || rec.IniNr != "13" {
		t.Fatalf("identity fields wrong: %q %q", rec.IniID, rec.IniNr)
	}
	if len(rec.IniEventos) != 1 || rec.IniEventos[0].Fase != "Entrada" {
		t.Fatalf("single-object events wrong: %+v", rec.IniEventos)
	}
	if len(rec.IniAutorOutros) != 1 || rec.IniAutorOutros[0].Nome != "Governo" {
		t.Fatalf("other author wrong: %+v", rec.IniAutorOutros)
	}
	if string(rec.IniciativasEuropeias) != `[{"id": "e1"}]` {
		t.Fatalf("raw blob not carried: %s", rec.IniciativasEuropeias)
	}
}

func TestDecodeXMLVariant(t *testing.T) {
	payload := []byte(`<?xml version="1.0" encoding="utf-8"?>
<ArrayOfPt_gov_ar_objectos_iniciativas_DetalhePesquisaIniciativasOut>
  <Pt_gov_ar_objectos_iniciativas_DetalhePesquisaIniciativasOut>
    <IniId>99001</IniId>
    <IniTitulo>Projeto antigo</IniTitulo>
    <IniDescTipo>Projeto de Lei</IniDescTipo>
    <IniLeg>XIII</IniLeg>
    <IniAutorGruposParlamentares>
      <wrapper><GP>PS</GP></wrapper>
      <wrapper><GP>BE</GP></wrapper>
    </IniAutorGruposParlamentares>
    <IniEventos>
      <Pt_gov_ar_objectos_iniciativas_EventosOut>
        <Fase>Entrada</Fase>
        <DataFase>2016-01-10</DataFase>
      </Pt_gov_ar_objectos_iniciativas_EventosOut>
    </IniEventos>
  </Pt_gov_ar_objectos_iniciativas_DetalhePesquisaIniciativasOut>
</ArrayOfPt_gov_ar_objectos_iniciativas_DetalhePesquisaIniciativasOut>`)

	c := NewClient(testLogger())
	records, err := c.decodeXML(payload)
	if err != nil {
		t.Fatalf("decodeXML: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.IniID != "99001" || rec.IniDescTipo != "Projeto de Lei" {
		t.Fatalf("record fields wrong: %+v", rec)
	}
	if len(rec.IniAutorGruposParlamentares) != 2 || rec.IniAutorGruposParlamentares[1].GP != "BE" {
		t.Fatalf("groups wrong: %+v", rec.IniAutorGruposParlamentares)
	}
	if len(rec.IniEventos) != 1 || rec.IniEventos[0].Fase != "Entrada" {
		t.Fatalf("events wrong: %+v", rec.IniEventos)
	}
}

func TestDecodeJSONSkipsGarbageElements(t *testing.T) {
	payload := []byte(`[{"IniId": "1", "IniTitulo": "A"}, "garbage", {"IniId": "2", "IniTitulo": "B"}]`)
	c := NewClient(testLogger())
	records, err := c.decodeJSON(payload)
	if err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if len(records) != 2 || records[0].IniID != "1" || records[1].IniID != "2" {
		t.Fatalf("records wrong: %+v", records)
	}
}
