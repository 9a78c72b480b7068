package feed

import (
	"bytes"
	"encoding/json"
)

// The Parlamento export is inconsistently shaped across legislatures:
// scalar fields arrive as strings or bare numbers, one-to-many fields
// arrive as a list or as a single object, and a few sub-records arrive
// as plain strings. All of that drift is absorbed here, once, so the
// reconciliation code downstream only ever sees one shape.

// Text is a scalar feed field. Strings decode as-is, bare numbers and
// booleans decode to their literal text, anything else (null, nested
// object, list) decodes to the empty string.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case '{', '[':
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

func (t Text) Empty() bool { return string(t) == "" }

// Many decodes a feed field that may be a list, a single object, null,
// or garbage. List elements that fail to decode individually are
// dropped rather than failing the whole field.
type Many[T any] []T

func (m *Many[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = nil
		return nil
	}
	if b[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(b, &raws); err != nil {
			*m = nil
			return nil
		}
		out := make([]T, 0, len(raws))
		for _, raw := range raws {
			var one T
			if err := json.Unmarshal(raw, &one); err != nil {
				continue
			}
			out = append(out, one)
		}
		*m = out
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		*m = nil
		return nil
	}
	*m = Many[T]{one}
	return nil
}

// Record is one initiative as shipped by the feed.
type Record struct {
	IniID              Text `json:"IniId"`
	IniNr              Text `json:"IniNr"`
	IniLeg             Text `json:"IniLeg"`
	IniTipo            Text `json:"IniTipo"`
	IniSel             Text `json:"IniSel"`
	IniTitulo          Text `json:"IniTitulo"`
	IniDescTipo        Text `json:"IniDescTipo"`
	IniLinkTexto       Text `json:"IniLinkTexto"`
	IniObs             Text `json:"IniObs"`
	IniEpigrafe        Text `json:"IniEpigrafe"`
	IniTextoSubst      Text `json:"IniTextoSubst"`
	IniTextoSubstCampo Text `json:"IniTextoSubstCampo"`
	DataInicioleg      Text `json:"DataInicioleg"`
	DataFimleg         Text `json:"DataFimleg"`

	IniciativasEuropeias  json.RawMessage `json:"IniciativasEuropeias,omitempty"`
	IniciativasOrigem     json.RawMessage `json:"IniciativasOrigem,omitempty"`
	IniciativasOriginadas json.RawMessage `json:"IniciativasOriginadas,omitempty"`

	IniAutorDeputados           Many[DeputyAuthor] `json:"IniAutorDeputados"`
	IniAutorGruposParlamentares Many[GroupAuthor]  `json:"IniAutorGruposParlamentares"`
	IniAutorOutros              Many[OtherAuthor]  `json:"IniAutorOutros"`
	IniAnexos                   Many[AttachmentRecord] `json:"IniAnexos"`
	IniEventos                  Many[EventRecord]  `json:"IniEventos"`
}

type DeputyAuthor struct {
	Nome       Text `json:"nome"`
	GP         Text `json:"GP"`
	IDCadastro Text `json:"idCadastro"`
}

type GroupAuthor struct {
	GP Text `json:"GP"`
}

type OtherAuthor struct {
	Nome  Text `json:"nome"`
	Sigla Text `json:"sigla"`
}

type AttachmentRecord struct {
	AnexoNome Text `json:"anexoNome"`
	AnexoFich Text `json:"anexoFich"`
}

// EventRecord is one lifecycle phase with its nested sub-collections.
type EventRecord struct {
	EvtID      Text `json:"EvtId"`
	OevID      Text `json:"OevId"`
	OevTextID  Text `json:"OevTextId"`
	ActID      Text `json:"ActId"`
	Fase       Text `json:"Fase"`
	DataFase   Text `json:"DataFase"`
	CodigoFase Text `json:"CodigoFase"`
	ObsFase    Text `json:"ObsFase"`

	AnexosFase           Many[AttachmentRecord]   `json:"AnexosFase"`
	PublicacaoFase       Many[PublicationRecord]  `json:"PublicacaoFase"`
	Comissao             Many[CommissionRecord]   `json:"Comissao"`
	Intervencoesdebates  Many[DebateRecord]       `json:"Intervencoesdebates"`
	TextosAprovados      Many[ApprovedTextRecord] `json:"TextosAprovados"`
	RecursoDeputados     Many[DeputyAppealRecord] `json:"RecursoDeputados"`
	RecursoGP            Many[PartyAppealRecord]  `json:"RecursoGP"`
	Votacao              Many[VoteRecord]         `json:"Votacao"`
	IniciativasConjuntas Many[RelatedRecord]      `json:"IniciativasConjuntas"`
}

type PublicationRecord struct {
	Pubdt              Text            `json:"pubdt"`
	PubLeg             Text            `json:"pubLeg"`
	PubNr              Text            `json:"pubNr"`
	PubSL              Text            `json:"pubSL"`
	PubTipo            Text            `json:"pubTipo"`
	PubTp              Text            `json:"pubTp"`
	Supl               Text            `json:"supl"`
	Pag                json.RawMessage `json:"pag,omitempty"`
	URLDiario          Text            `json:"URLDiario"`
	IDPag              Text            `json:"idPag"`
	Obs                Text            `json:"obs"`
	IDDeb              Text            `json:"idDeb"`
	IDInt              Text            `json:"idInt"`
	IDAct              Text            `json:"idAct"`
	PagFinalDiarioSupl Text            `json:"pagFinalDiarioSupl"`
}

type CommissionRecord struct {
	Nome                         Text `json:"Nome"`
	Numero                       Text `json:"Numero"`
	IDComissao                   Text `json:"IdComissao"`
	AccID                        Text `json:"AccId"`
	Competente                   Text `json:"Competente"`
	Observacao                   Text `json:"Observacao"`
	DataDistribuicao             Text `json:"DataDistribuicao"`
	DistribuicaoSubcomissao      Text `json:"DistribuicaoSubcomissao"`
	DataDistruibuicaoSubcomissao Text `json:"DataDistruibuicaoSubcomissao"`
	DataEntrada                  Text `json:"DataEntrada"`
	DatainicioApreciacaoPublica  Text `json:"DatainicioApreciacaoPublica"`
	DatafimApreciacaoPublica     Text `json:"DatafimApreciacaoPublica"`
	DataMotivoNaoParecer         Text `json:"DataMotivoNaoParecer"`
	DataRelatorio                Text `json:"DataRelatorio"`
	DataRemessa                  Text `json:"DataRemessa"`
	DataReqAgendamentoPlenario   Text `json:"DataReqAgendamentoPlenario"`
	AguardaAgendamentoPlenario   Text `json:"AguardaAgendamentoPlenario"`
	DataAgendamentoPlenario      Text `json:"DataAgendamentoPlenario"`
	DataAgendamentoDiscussao     Text `json:"DataAgendamentoDiscussao"`
	GpAgendamentoPlenario        Text `json:"GpAgendamentoPlenario"`
	MotivoNaoParecer             Text `json:"MotivoNaoParecer"`
	Prorrogado                   Text `json:"Prorrogado"`
	Sigla                        Text `json:"Sigla"`
	Legislatura                  Text `json:"Legislatura"`
	Sessao                       Text `json:"Sessao"`

	Documentos           Many[CommissionDocumentRecord] `json:"Documentos"`
	Relatores            Many[RapporteurRecord]         `json:"Relatores"`
	PareceresRecebidos   Many[OpinionRecord]            `json:"PareceresRecebidos"`
	PedidosParecer       Many[EntityDateRecord]         `json:"PedidosParecer"`
	Audicoes             Many[EntityDateRecord]         `json:"Audicoes"`
	Audiencias           Many[EntityDateRecord]         `json:"Audiencias"`
	Votacao              Many[CommissionVoteRecord]     `json:"Votacao"`
	RemessaRedaccaoFinal Many[FinalDraftRecord]         `json:"RemessaRedaccaoFinal"`
	Remessas             Many[EntityDateRecord]         `json:"Remessas"`
}

type CommissionDocumentRecord struct {
	TituloDocumento Text `json:"TituloDocumento"`
	TipoDocumento   Text `json:"TipoDocumento"`
	DataDocumento   Text `json:"DataDocumento"`
	URL             Text `json:"URL"`
}

type RapporteurRecord struct {
	Nome Text `json:"nome"`
	GP   Text `json:"GP"`
	Data Text `json:"data"`
}

type OpinionRecord struct {
	Entidade      Text `json:"entidade"`
	Data          Text `json:"data"`
	URL           Text `json:"url"`
	TipoDocumento Text `json:"tipoDocumento"`
}

// EntityDateRecord covers the (entidade, data) shape shared by opinion
// requests, hearings, audiences and forwardings.
type EntityDateRecord struct {
	Entidade Text `json:"entidade"`
	Data     Text `json:"data"`
}

type CommissionVoteRecord struct {
	Data      Text            `json:"data"`
	Resultado Text            `json:"resultado"`
	Favor     json.RawMessage `json:"favor,omitempty"`
	Contra    json.RawMessage `json:"contra,omitempty"`
	Abstencao json.RawMessage `json:"abstencao,omitempty"`
}

type FinalDraftRecord struct {
	Data  Text `json:"data"`
	Texto Text `json:"texto"`
}

type DebateRecord struct {
	DataReuniaoPlenaria Text `json:"dataReuniaoPlenaria"`
	FaseDebate          Text `json:"faseDebate"`
	FaseSessao          Text `json:"faseSessao"`
	HoraInicio          Text `json:"horaInicio"`
	HoraTermo           Text `json:"horaTermo"`
	Sumario             Text `json:"sumario"`
	Teor                Text `json:"teor"`

	LinkVideo      Many[VideoLinkRecord]        `json:"linkVideo"`
	Deputados      Many[DebateDeputyRecord]     `json:"deputados"`
	MembrosGoverno Many[GovernmentMemberRecord] `json:"membrosGoverno"`
	Convidados     Many[GuestRecord]            `json:"convidados"`
}

type VideoLinkRecord struct {
	Link Text `json:"link"`
}

type DebateDeputyRecord struct {
	Nome Text `json:"nome"`
	GP   Text `json:"GP"`
}

type GovernmentMemberRecord struct {
	Nome    Text `json:"nome"`
	Cargo   Text `json:"cargo"`
	Governo Text `json:"governo"`
}

type GuestRecord struct {
	Nome  Text `json:"nome"`
	Cargo Text `json:"cargo"`
	Honra Text `json:"honra"`
	Pais  Text `json:"pais"`
}

// ApprovedTextRecord tolerates the feed's habit of shipping approved
// texts either as objects or as bare strings.
type ApprovedTextRecord struct {
	Titulo Text `json:"titulo"`
	Tipo   Text `json:"tipo"`
	Data   Text `json:"data"`
	URL    Text `json:"url"`
}

func (a *ApprovedTextRecord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		a.Titulo = Text(s)
		a.Tipo = "Unknown"
		return nil
	}
	type alias ApprovedTextRecord
	var tmp alias
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*a = ApprovedTextRecord(tmp)
	return nil
}

type DeputyAppealRecord struct {
	Nome Text `json:"nome"`
	GP   Text `json:"GP"`
	Data Text `json:"data"`
}

type PartyAppealRecord struct {
	GP   Text `json:"GP"`
	Data Text `json:"data"`
}

type VoteRecord struct {
	ID          Text            `json:"id"`
	Data        Text            `json:"data"`
	Resultado   Text            `json:"resultado"`
	Detalhe     Text            `json:"detalhe"`
	Descricao   Text            `json:"descricao"`
	Reuniao     Text            `json:"reuniao"`
	TipoReuniao Text            `json:"tipoReuniao"`
	Unanime     Text            `json:"unanime"`
	Ausencias   json.RawMessage `json:"ausencias,omitempty"`

	Publicacao Many[PublicationRecord] `json:"publicacao"`
}

type RelatedRecord struct {
	ID          Text `json:"id"`
	DescTipo    Text `json:"descTipo"`
	Nr          Text `json:"nr"`
	Leg         Text `json:"leg"`
	Titulo      Text `json:"titulo"`
	DataEntrada Text `json:"dataEntrada"`
	Sel         Text `json:"sel"`
}
