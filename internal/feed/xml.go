package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"

	"golang.org/x/net/html/charset"
)

// The XML export predates the JSON one and carries a reduced schema:
// initiative identity, authorship by parliamentary group, and the
// phase list without sub-collections.

const xmlRecordElement = "Pt_gov_ar_objectos_iniciativas_DetalhePesquisaIniciativasOut"

type xmlRecord struct {
	IniID         string     `xml:"IniId"`
	IniNr         string     `xml:"IniNr"`
	IniLeg        string     `xml:"IniLeg"`
	IniTipo       string     `xml:"IniTipo"`
	IniSel        string     `xml:"IniSel"`
	IniTitulo     string     `xml:"IniTitulo"`
	IniDescTipo   string     `xml:"IniDescTipo"`
	IniLinkTexto  string     `xml:"IniLinkTexto"`
	IniObs        string     `xml:"IniObs"`
	IniEpigrafe   string     `xml:"IniEpigrafe"`
	DataInicioleg string     `xml:"DataInicioleg"`
	DataFimleg    string     `xml:"DataFimleg"`
	GruposRaw     struct {
		Raw string `xml:",innerxml"`
	} `xml:"IniAutorGruposParlamentares"`
	Eventos       []xmlEvent `xml:"IniEventos>Pt_gov_ar_objectos_iniciativas_EventosOut"`
}

type xmlEvent struct {
	EvtID      string `xml:"EvtId"`
	OevID      string `xml:"OevId"`
	Fase       string `xml:"Fase"`
	DataFase   string `xml:"DataFase"`
	CodigoFase string `xml:"CodigoFase"`
	ObsFase    string `xml:"ObsFase"`
}

// The group wrapper element name varies between export versions, so
// the groups are pulled out of the raw inner XML instead.
var xmlGroupRe = regexp.MustCompile(`<GP>([^<]+)</GP>`)

func (c *Client) decodeXML(raw []byte) ([]Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel

	var records []Record
	skipped := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != xmlRecordElement {
			continue
		}
		var xr xmlRecord
		if err := dec.DecodeElement(&xr, &se); err != nil {
			skipped++
			continue
		}
		records = append(records, xr.toRecord())
	}
	if skipped > 0 {
		c.log.Warn("skipped undecodable xml records", "skipped", skipped, "decoded", len(records))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("xml payload contains no %s elements", xmlRecordElement)
	}
	return records, nil
}

func (xr xmlRecord) toRecord() Record {
	rec := Record{
		IniID:         Text(xr.IniID),
		IniNr:         Text(xr.IniNr),
		IniLeg:        Text(xr.IniLeg),
		IniTipo:       Text(xr.IniTipo),
		IniSel:        Text(xr.IniSel),
		IniTitulo:     Text(xr.IniTitulo),
		IniDescTipo:   Text(xr.IniDescTipo),
		IniLinkTexto:  Text(xr.IniLinkTexto),
		IniObs:        Text(xr.IniObs),
		IniEpigrafe:   Text(xr.IniEpigrafe),
		DataInicioleg: Text(xr.DataInicioleg),
		DataFimleg:    Text(xr.DataFimleg),
	}
	for _, m := range xmlGroupRe.FindAllStringSubmatch(xr.GruposRaw.Raw, -1) {
		rec.IniAutorGruposParlamentares = append(rec.IniAutorGruposParlamentares, GroupAuthor{GP: Text(m[1])})
	}
	for _, ev := range xr.Eventos {
		rec.IniEventos = append(rec.IniEventos, EventRecord{
			EvtID:      Text(ev.EvtID),
			OevID:      Text(ev.OevID),
			Fase:       Text(ev.Fase),
			DataFase:   Text(ev.DataFase),
			CodigoFase: Text(ev.CodigoFase),
			ObsFase:    Text(ev.ObsFase),
		})
	}
	return rec
}
