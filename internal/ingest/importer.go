package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/passosperdidos/parlamento-backend/internal/feed"
	"github.com/passosperdidos/parlamento-backend/internal/logger"
	"github.com/passosperdidos/parlamento-backend/internal/repos"
	"github.com/passosperdidos/parlamento-backend/internal/types"
)

// Options controls one import run.
type Options struct {
	// Source is a feed URL or a local file path.
	Source string
	// Limit caps the number of records processed; 0 means all.
	Limit int
	// SkipPhases imports only the initiative headline and authorship.
	SkipPhases bool
	// ResumeFromID restarts a run at the given external id, skipping
	// everything before it in feed order.
	ResumeFromID string
}

// Counters summarises an import run.
type Counters struct {
	Processed int
	Created   int
	Updated   int
	Failed    int
	Skipped   int
}

// Importer drives the feed into the relational model. Each record runs
// in its own transaction so one bad record never sinks the batch.
type Importer struct {
	db           *gorm.DB
	client       *feed.Client
	legislatures repos.LegislatureRepo
	initiatives  repos.InitiativeRepo
	authors      repos.AuthorRepo
	phases       repos.PhaseRepo
	attachments  repos.AttachmentRepo
	publications repos.PublicationRepo
	votes        repos.VoteRepo
	commissions  repos.CommissionRepo
	debates      repos.DebateRepo
	phaseRecords repos.PhaseRecordRepo
	log          *logger.Logger
}

func NewImporter(
	db *gorm.DB,
	client *feed.Client,
	legislatures repos.LegislatureRepo,
	initiatives repos.InitiativeRepo,
	authors repos.AuthorRepo,
	phases repos.PhaseRepo,
	attachments repos.AttachmentRepo,
	publications repos.PublicationRepo,
	votes repos.VoteRepo,
	commissions repos.CommissionRepo,
	debates repos.DebateRepo,
	phaseRecords repos.PhaseRecordRepo,
	baseLog *logger.Logger,
) *Importer {
	return &Importer{
		db:           db,
		client:       client,
		legislatures: legislatures,
		initiatives:  initiatives,
		authors:      authors,
		phases:       phases,
		attachments:  attachments,
		publications: publications,
		votes:        votes,
		commissions:  commissions,
		debates:      debates,
		phaseRecords: phaseRecords,
		log:          baseLog.With("component", "importer"),
	}
}

func (imp *Importer) Run(ctx context.Context, opts Options) (*Counters, error) {
	records, err := imp.client.Fetch(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	imp.log.Info("fetched feed", "records", len(records), "source", opts.Source)

	counters := &Counters{}
	if opts.ResumeFromID != "" {
		cut := -1
		for i, rec := range records {
			if rec.IniID.String() == opts.ResumeFromID {
				cut = i
				break
			}
		}
		if cut < 0 {
			return nil, fmt.Errorf("resume id %q not present in feed", opts.ResumeFromID)
		}
		counters.Skipped = cut
		records = records[cut:]
		imp.log.Info("resuming", "from", opts.ResumeFromID, "remaining", len(records))
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return counters, err
		}
		rec := rec
		var created bool
		err := imp.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			created, txErr = imp.importOne(ctx, tx, rec, opts)
			return txErr
		})
		if err != nil {
			counters.Failed++
			imp.log.Error("record failed", "external_id", rec.IniID.String(), "error", err)
			continue
		}
		counters.Processed++
		if created {
			counters.Created++
		} else {
			counters.Updated++
		}
		if counters.Processed%10 == 0 {
			imp.log.Info("import progress", "processed", counters.Processed)
		}
	}
	imp.log.Info("import completed",
		"processed", counters.Processed,
		"created", counters.Created,
		"updated", counters.Updated,
		"failed", counters.Failed,
		"skipped", counters.Skipped)
	imp.logStats(ctx)
	return counters, nil
}

// logStats reports the state of the store after a run.
func (imp *Importer) logStats(ctx context.Context) {
	stats, err := CollectStats(ctx, imp.db, 5)
	if err != nil {
		imp.log.Warn("collecting statistics", "error", err)
		return
	}
	for _, tc := range stats.Tables {
		imp.log.Info("table count", "table", tc.Table, "count", tc.Count)
	}
	for _, vr := range stats.TopVoteResults {
		imp.log.Info("vote result", "result", vr.Result, "count", vr.Count)
	}
}

// importOne reconciles a single feed record. Returns whether the
// initiative row was created as opposed to updated.
func (imp *Importer) importOne(ctx context.Context, tx *gorm.DB, rec feed.Record, opts Options) (bool, error) {
	externalID := Truncate(rec.IniID.String(), maxExternalID)
	if externalID == "" {
		return false, fmt.Errorf("record has no IniId")
	}

	leg, _, err := imp.legislatures.GetOrCreate(ctx, tx,
		clipStr(rec.IniLeg, maxLegNumber),
		ParseDate(rec.DataInicioleg.String()),
		ParseDate(rec.DataFimleg.String()))
	if err != nil {
		return false, fmt.Errorf("reconciling legislature: %w", err)
	}

	ini, createdIni, err := imp.reconcileInitiative(ctx, tx, rec, externalID, leg)
	if err != nil {
		return false, err
	}

	if err := imp.processAuthors(ctx, tx, rec, ini); err != nil {
		return false, err
	}
	imp.processTopLevelAttachments(ctx, tx, rec, ini)
	if !opts.SkipPhases {
		if err := imp.processPhases(ctx, tx, rec, ini); err != nil {
			return false, err
		}
	}
	return createdIni, nil
}

// subItem runs fn inside a savepoint. A failing sub-item is logged
// with its natural key and skipped, leaving siblings and the parent
// record to commit; only record-level failures roll the record back.
func (imp *Importer) subItem(tx *gorm.DB, entity, key string, fn func(sub *gorm.DB) error) bool {
	if err := tx.Transaction(fn); err != nil {
		imp.log.Warn("sub-item skipped", "entity", entity, "key", key, "error", err)
		return false
	}
	return true
}

func (imp *Importer) reconcileInitiative(ctx context.Context, tx *gorm.DB, rec feed.Record, externalID string, leg *types.Legislature) (*types.Initiative, bool, error) {
	candidate := &types.Initiative{
		ExternalID:            externalID,
		Title:                 clipStr(rec.IniTitulo, maxTitle),
		Type:                  clipStr(rec.IniDescTipo, maxType),
		LegislatureID:         leg.ID,
		Date:                  ParseDate(rec.DataInicioleg.String()),
		Link:                  clipStr(rec.IniLinkTexto, maxURL),
		InitiativeID:          clip(rec.IniID, maxEventID),
		InitiativeLegislature: clip(rec.IniLeg, maxTypeCode),
		InitiativeNumber:      clip(rec.IniNr, maxNumber),
		InitiativeTypeCode:    clip(rec.IniTipo, maxTypeCode),
		InitiativeSelection:   clip(rec.IniSel, maxSelection),
		SubstituteText:        clip(rec.IniTextoSubst, maxSelection),
		SubstituteTextField:   clip(rec.IniTextoSubstCampo, 1<<20),
		Observation:           clip(rec.IniObs, 1<<20),
		Epigraph:              clip(rec.IniEpigrafe, 1<<20),
		TextLink:              clip(rec.IniLinkTexto, maxURL),
		EuropeanInitiatives:   rawJSON(rec.IniciativasEuropeias),
		OriginInitiatives:     rawJSON(rec.IniciativasOrigem),
		OriginatedInitiatives: rawJSON(rec.IniciativasOriginadas),
	}

	existing, err := imp.initiatives.GetByExternalID(ctx, tx, externalID)
	switch {
	case err == nil:
		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt
		// The summary and publication columns are filled out of band,
		// never by the feed; a refresh must not wipe them.
		candidate.Description = existing.Description
		candidate.PublicationURL = existing.PublicationURL
		candidate.PublicationDate = existing.PublicationDate
		if err := imp.initiatives.Save(ctx, tx, candidate); err != nil {
			return nil, false, fmt.Errorf("updating initiative: %w", err)
		}
		return candidate, false, nil
	case errorsIsNotFound(err):
		candidate.ID = uuid.New()
		if err := imp.initiatives.Create(ctx, tx, candidate); err != nil {
			return nil, false, fmt.Errorf("creating initiative: %w", err)
		}
		return candidate, true, nil
	default:
		return nil, false, fmt.Errorf("looking up initiative: %w", err)
	}
}

func (imp *Importer) processAuthors(ctx context.Context, tx *gorm.DB, rec feed.Record, ini *types.Initiative) error {
	var authors []*types.Author
	seen := map[uuid.UUID]bool{}
	add := func(a *types.Author) {
		if !seen[a.ID] {
			seen[a.ID] = true
			authors = append(authors, a)
		}
	}

	for _, dep := range rec.IniAutorDeputados {
		name := clipStr(dep.Nome, maxName)
		if name == "" {
			continue
		}
		dep := dep
		imp.subItem(tx, "author", name, func(sub *gorm.DB) error {
			author, _, err := imp.authors.FindOrCreate(ctx, sub, name,
				clip(dep.GP, maxParty), types.AuthorTypeDeputy, clip(dep.IDCadastro, maxIDCadastro))
			if err != nil {
				return fmt.Errorf("reconciling deputy author: %w", err)
			}
			add(author)
			return nil
		})
	}
	for _, grp := range rec.IniAutorGruposParlamentares {
		name := clipStr(grp.GP, maxParty)
		if name == "" {
			continue
		}
		imp.subItem(tx, "author", name, func(sub *gorm.DB) error {
			author, _, err := imp.authors.FindOrCreate(ctx, sub, name, &name, types.AuthorTypeGroup, nil)
			if err != nil {
				return fmt.Errorf("reconciling group author: %w", err)
			}
			add(author)
			return nil
		})
	}
	for _, other := range rec.IniAutorOutros {
		name := clipStr(other.Nome, maxName)
		if name == "" {
			continue
		}
		other := other
		imp.subItem(tx, "author", name, func(sub *gorm.DB) error {
			author, _, err := imp.authors.FindOrCreate(ctx, sub, name,
				clip(other.Sigla, maxParty), types.AuthorTypeOther, nil)
			if err != nil {
				return fmt.Errorf("reconciling other author: %w", err)
			}
			add(author)
			return nil
		})
	}

	if err := imp.initiatives.ReplaceAuthors(ctx, tx, ini, authors); err != nil {
		return fmt.Errorf("replacing authorship: %w", err)
	}
	return nil
}

func (imp *Importer) processTopLevelAttachments(ctx context.Context, tx *gorm.DB, rec feed.Record, ini *types.Initiative) {
	for _, ar := range rec.IniAnexos {
		ar := ar
		imp.subItem(tx, "attachment", ar.AnexoNome.String(), func(sub *gorm.DB) error {
			att, err := imp.reconcileAttachment(ctx, sub, ar, nil)
			if err != nil {
				return err
			}
			if err := imp.initiatives.AppendAttachment(ctx, sub, ini, att); err != nil {
				return fmt.Errorf("linking attachment: %w", err)
			}
			return nil
		})
	}
}

func (imp *Importer) reconcileAttachment(ctx context.Context, tx *gorm.DB, ar feed.AttachmentRecord, phaseID *uuid.UUID) (*types.Attachment, error) {
	name := clipStr(ar.AnexoNome, maxAttachmentName)
	if name == "" {
		name = "Untitled Attachment"
	}
	att, _, err := imp.attachments.Reconcile(ctx, tx, &types.Attachment{
		Name:    name,
		FileURL: clipStr(ar.AnexoFich, maxURL),
		PhaseID: phaseID,
	})
	if err != nil {
		return nil, fmt.Errorf("reconciling attachment: %w", err)
	}
	return att, nil
}

func (imp *Importer) processPhases(ctx context.Context, tx *gorm.DB, rec feed.Record, ini *types.Initiative) error {
	var phases []*types.Phase
	for _, ev := range rec.IniEventos {
		ev := ev
		var phase *types.Phase
		imp.subItem(tx, "phase", ev.Fase.String(), func(sub *gorm.DB) error {
			p, _, err := imp.phases.Reconcile(ctx, sub, &types.Phase{
				Name:        clipStr(ev.Fase, maxPhaseName),
				Date:        ParseDate(ev.DataFase.String()),
				Code:        clip(ev.CodigoFase, maxPhaseCode),
				Observation: clip(ev.ObsFase, 1<<20),
				EvtID:       clip(ev.EvtID, maxEventID),
				OevID:       clip(ev.OevID, maxEventID),
				OevTextID:   clip(ev.OevTextID, maxEventID),
				ActID:       clip(ev.ActID, maxEventID),
			})
			if err != nil {
				return fmt.Errorf("reconciling phase: %w", err)
			}
			phase = p

			for _, ar := range ev.AnexosFase {
				ar := ar
				imp.subItem(sub, "attachment", ar.AnexoNome.String(), func(s *gorm.DB) error {
					_, err := imp.reconcileAttachment(ctx, s, ar, &p.ID)
					return err
				})
			}
			for _, pr := range ev.PublicacaoFase {
				pr := pr
				imp.subItem(sub, "publication", pr.URLDiario.String(), func(s *gorm.DB) error {
					return imp.reconcilePublication(ctx, s, pr, &p.ID, nil)
				})
			}
			imp.processCommissions(ctx, sub, ev.Comissao, p)
			imp.processDebates(ctx, sub, ev.Intervencoesdebates, p)
			imp.processPhaseRecords(ctx, sub, ev, p)
			imp.processVotes(ctx, sub, ev.Votacao, ini)
			imp.processRelated(ctx, sub, ev.IniciativasConjuntas, ini, p)
			return nil
		})
		if phase != nil {
			phases = append(phases, phase)
		}
	}

	if err := imp.initiatives.ReplacePhases(ctx, tx, ini, phases); err != nil {
		return fmt.Errorf("replacing phase membership: %w", err)
	}
	return nil
}

func (imp *Importer) reconcilePublication(ctx context.Context, tx *gorm.DB, pr feed.PublicationRecord, phaseID, voteID *uuid.UUID) error {
	_, _, err := imp.publications.Reconcile(ctx, tx, &types.Publication{
		Date:                 ParseDate(pr.Pubdt.String()),
		LegislatureCode:      clip(pr.PubLeg, maxPubNumber),
		Number:               clip(pr.PubNr, maxPubNumber),
		Session:              clip(pr.PubSL, maxPubNumber),
		PublicationType:      clip(pr.PubTipo, maxPubLabel),
		PublicationTp:        clip(pr.PubTp, maxPubNumber),
		Supplement:           clip(pr.Supl, maxPubNumber),
		Pages:                rawJSON(pr.Pag),
		URL:                  clip(pr.URLDiario, maxURL),
		IDPage:               clip(pr.IDPag, maxEventID),
		Observation:          clip(pr.Obs, 1<<20),
		IDDebate:             clip(pr.IDDeb, maxEventID),
		IDIntervention:       clip(pr.IDInt, maxEventID),
		IDAct:                clip(pr.IDAct, maxEventID),
		FinalDiarySupplement: clip(pr.PagFinalDiarioSupl, maxPubLabel),
		PhaseID:              phaseID,
		VoteID:               voteID,
	})
	if err != nil {
		return fmt.Errorf("reconciling publication: %w", err)
	}
	return nil
}

func (imp *Importer) processCommissions(ctx context.Context, tx *gorm.DB, records []feed.CommissionRecord, phase *types.Phase) {
	for _, cr := range records {
		cr := cr
		var commission *types.Commission
		ok := imp.subItem(tx, "commission", cr.Nome.String(), func(sub *gorm.DB) error {
			c, _, err := imp.commissions.Reconcile(ctx, sub, &types.Commission{
				Name:                          clipStr(cr.Nome, maxCommissionName),
				Number:                        clip(cr.Numero, maxCommissionNum),
				IDCommission:                  clip(cr.IDComissao, maxEventID),
				AccID:                         clip(cr.AccID, maxEventID),
				Competent:                     clip(cr.Competente, maxTypeCode),
				Observation:                   clip(cr.Observacao, 1<<20),
				DistributionDate:              ParseDate(cr.DataDistribuicao.String()),
				SubcommissionDistribution:     clip(cr.DistribuicaoSubcomissao, 1<<20),
				SubcommissionDistributionDate: ParseDate(cr.DataDistruibuicaoSubcomissao.String()),
				EntryDate:                     ParseDate(cr.DataEntrada.String()),
				PublicAppreciationStartDate:   ParseDate(cr.DatainicioApreciacaoPublica.String()),
				PublicAppreciationEndDate:     ParseDate(cr.DatafimApreciacaoPublica.String()),
				NoOpinionReasonDate:           ParseDate(cr.DataMotivoNaoParecer.String()),
				ReportDate:                    ParseDate(cr.DataRelatorio.String()),
				ForwardingDate:                ParseDate(cr.DataRemessa.String()),
				PlenarySchedulingRequestDate:  ParseDate(cr.DataReqAgendamentoPlenario.String()),
				AwaitsPlenaryScheduling:       clip(cr.AguardaAgendamentoPlenario, maxFlag),
				PlenarySchedulingDate:         ParseDate(cr.DataAgendamentoPlenario.String()),
				DiscussionSchedulingDate:      ParseDate(cr.DataAgendamentoDiscussao.String()),
				PlenarySchedulingGP:           clip(cr.GpAgendamentoPlenario, maxFlag),
				NoOpinionReason:               clip(cr.MotivoNaoParecer, 1<<20),
				Extended:                      clip(cr.Prorrogado, maxTypeCode),
				Sigla:                         clip(cr.Sigla, maxFlag),
				LegislatureRef:                clip(cr.Legislatura, maxFlag),
				SessionRef:                    clip(cr.Sessao, maxFlag),
				PhaseID:                       phase.ID,
			})
			if err != nil {
				return fmt.Errorf("reconciling commission: %w", err)
			}
			commission = c
			return nil
		})
		if !ok {
			continue
		}

		for _, d := range cr.Documentos {
			d := d
			imp.subItem(tx, "commission document", d.TituloDocumento.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddDocument(ctx, sub, &types.CommissionDocument{
					Title:        clipStr(d.TituloDocumento, maxDocTitle),
					DocumentType: clipStr(d.TipoDocumento, maxDocType),
					Date:         ParseDate(d.DataDocumento.String()),
					URL:          clip(d.URL, maxURL),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, rr := range cr.Relatores {
			rr := rr
			imp.subItem(tx, "rapporteur", rr.Nome.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddRapporteur(ctx, sub, &types.Rapporteur{
					Name:         clipStr(rr.Nome, maxName),
					Party:        clip(rr.GP, maxParty),
					Date:         ParseDate(rr.Data.String()),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, op := range cr.PareceresRecebidos {
			op := op
			imp.subItem(tx, "opinion", op.Entidade.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddOpinion(ctx, sub, &types.Opinion{
					Entity:       clipStr(op.Entidade, maxEntity),
					Date:         ParseDate(op.Data.String()),
					URL:          clip(op.URL, maxURL),
					DocumentType: clip(op.TipoDocumento, maxDocType),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, req := range cr.PedidosParecer {
			req := req
			imp.subItem(tx, "opinion request", req.Entidade.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddOpinionRequest(ctx, sub, &types.OpinionRequest{
					Entity:       clipStr(req.Entidade, maxEntity),
					Date:         ParseDate(req.Data.String()),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, h := range cr.Audicoes {
			h := h
			imp.subItem(tx, "hearing", h.Entidade.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddHearing(ctx, sub, &types.Hearing{
					Entity:       clipStr(h.Entidade, maxEntity),
					Date:         ParseDate(h.Data.String()),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, a := range cr.Audiencias {
			a := a
			imp.subItem(tx, "audience", a.Entidade.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddAudience(ctx, sub, &types.Audience{
					Entity:       clipStr(a.Entidade, maxEntity),
					Date:         ParseDate(a.Data.String()),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, v := range cr.Votacao {
			v := v
			imp.subItem(tx, "commission vote", v.Resultado.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddVote(ctx, sub, &types.CommissionVote{
					Date:         ParseDate(v.Data.String()),
					Result:       clip(v.Resultado, maxResult),
					Favor:        rawJSON(v.Favor),
					Against:      rawJSON(v.Contra),
					Abstention:   rawJSON(v.Abstencao),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, s := range cr.RemessaRedaccaoFinal {
			s := s
			imp.subItem(tx, "final draft submission", s.Data.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddFinalDraftSubmission(ctx, sub, &types.FinalDraftSubmission{
					Date:         ParseDate(s.Data.String()),
					Text:         clip(s.Texto, 1<<20),
					CommissionID: commission.ID,
				})
				return err
			})
		}
		for _, f := range cr.Remessas {
			f := f
			imp.subItem(tx, "forwarding", f.Entidade.String(), func(sub *gorm.DB) error {
				_, err := imp.commissions.AddForwarding(ctx, sub, &types.Forwarding{
					Entity:       clipStr(f.Entidade, maxEntity),
					Date:         ParseDate(f.Data.String()),
					CommissionID: commission.ID,
				})
				return err
			})
		}
	}
}

func (imp *Importer) processDebates(ctx context.Context, tx *gorm.DB, records []feed.DebateRecord, phase *types.Phase) {
	for _, dr := range records {
		dr := dr
		var debate *types.Debate
		ok := imp.subItem(tx, "debate", dr.DataReuniaoPlenaria.String(), func(sub *gorm.DB) error {
			d, _, err := imp.debates.Reconcile(ctx, sub, &types.Debate{
				Date:         ParseDate(dr.DataReuniaoPlenaria.String()),
				PhaseLabel:   clip(dr.FaseDebate, maxDebatePhase),
				SessionPhase: clip(dr.FaseSessao, maxTypeCode),
				StartTime:    clip(dr.HoraInicio, maxClock),
				EndTime:      clip(dr.HoraTermo, maxClock),
				Summary:      clip(dr.Sumario, 1<<20),
				Content:      clip(dr.Teor, 1<<20),
				PhaseID:      phase.ID,
			})
			if err != nil {
				return fmt.Errorf("reconciling debate: %w", err)
			}
			debate = d
			return nil
		})
		if !ok {
			continue
		}

		for _, l := range dr.LinkVideo {
			url := clipStr(l.Link, maxURL)
			if url == "" {
				continue
			}
			imp.subItem(tx, "video link", url, func(sub *gorm.DB) error {
				_, err := imp.debates.AddVideoLink(ctx, sub, &types.VideoLink{
					URL:      url,
					DebateID: debate.ID,
				})
				return err
			})
		}
		for _, d := range dr.Deputados {
			name := clipStr(d.Nome, maxName)
			if name == "" {
				continue
			}
			d := d
			imp.subItem(tx, "debate deputy", name, func(sub *gorm.DB) error {
				_, err := imp.debates.AddDeputy(ctx, sub, &types.DeputyDebate{
					Name:     name,
					Party:    clip(d.GP, maxParty),
					DebateID: debate.ID,
				})
				return err
			})
		}
		for _, g := range dr.MembrosGoverno {
			name := clipStr(g.Nome, maxName)
			if name == "" {
				continue
			}
			g := g
			imp.subItem(tx, "government member", name, func(sub *gorm.DB) error {
				_, err := imp.debates.AddGovernmentMember(ctx, sub, &types.GovernmentMemberDebate{
					Name:       name,
					Position:   clip(g.Cargo, maxRole),
					Government: clip(g.Governo, maxRole),
					DebateID:   debate.ID,
				})
				return err
			})
		}
		for _, g := range dr.Convidados {
			g := g
			imp.subItem(tx, "debate guest", g.Nome.String(), func(sub *gorm.DB) error {
				_, err := imp.debates.AddGuest(ctx, sub, &types.GuestDebate{
					Name:     clip(g.Nome, maxName),
					Position: clip(g.Cargo, maxRole),
					Honor:    clip(g.Honra, maxRole),
					Country:  clip(g.Pais, maxCountry),
					DebateID: debate.ID,
				})
				return err
			})
		}
	}
}

func (imp *Importer) processPhaseRecords(ctx context.Context, tx *gorm.DB, ev feed.EventRecord, phase *types.Phase) {
	for _, t := range ev.TextosAprovados {
		t := t
		imp.subItem(tx, "approved text", t.Titulo.String(), func(sub *gorm.DB) error {
			_, err := imp.phaseRecords.AddApprovedText(ctx, sub, &types.ApprovedText{
				Title:    clipStr(t.Titulo, maxDocTitle),
				TextType: clipStr(t.Tipo, maxDocType),
				Date:     ParseDate(t.Data.String()),
				URL:      clip(t.URL, maxURL),
				PhaseID:  &phase.ID,
			})
			return err
		})
	}
	for _, a := range ev.RecursoDeputados {
		name := clipStr(a.Nome, maxName)
		if name == "" {
			continue
		}
		a := a
		imp.subItem(tx, "deputy appeal", name, func(sub *gorm.DB) error {
			_, err := imp.phaseRecords.AddDeputyAppeal(ctx, sub, &types.DeputyAppeal{
				DeputyName: name,
				Party:      clip(a.GP, maxParty),
				Date:       ParseDate(a.Data.String()),
				PhaseID:    &phase.ID,
			})
			return err
		})
	}
	for _, a := range ev.RecursoGP {
		party := clipStr(a.GP, maxParty)
		if party == "" {
			continue
		}
		a := a
		imp.subItem(tx, "party appeal", party, func(sub *gorm.DB) error {
			_, err := imp.phaseRecords.AddPartyAppeal(ctx, sub, &types.PartyAppeal{
				Party:   party,
				Date:    ParseDate(a.Data.String()),
				PhaseID: &phase.ID,
			})
			return err
		})
	}
}

func (imp *Importer) processVotes(ctx context.Context, tx *gorm.DB, records []feed.VoteRecord, ini *types.Initiative) {
	for _, vr := range records {
		vr := vr
		var vote *types.Vote
		ok := imp.subItem(tx, "vote", vr.ID.String(), func(sub *gorm.DB) error {
			candidate := &types.Vote{
				VoteID:      clip(vr.ID, maxEventID),
				Date:        ParseDate(vr.Data.String()),
				Result:      clipStr(vr.Resultado, maxVoteResult),
				Details:     clip(vr.Detalhe, 1<<20),
				Description: clip(vr.Descricao, 1<<20),
				Meeting:     clip(vr.Reuniao, maxMeeting),
				MeetingType: clip(vr.TipoReuniao, maxMeeting),
				Unanimous:   clip(vr.Unanime, maxFlag),
				Absences:    rawJSON(vr.Ausencias),
			}
			if candidate.Details != nil {
				breakdown := ParseVoteDetails(*candidate.Details)
				blob, err := json.Marshal(breakdown)
				if err == nil {
					candidate.Breakdown = datatypes.JSON(blob)
				}
			}
			v, _, err := imp.votes.Reconcile(ctx, sub, candidate)
			if err != nil {
				return fmt.Errorf("reconciling vote: %w", err)
			}
			if err := imp.initiatives.AppendVote(ctx, sub, ini, v); err != nil {
				return fmt.Errorf("linking vote: %w", err)
			}
			vote = v
			return nil
		})
		if !ok {
			continue
		}
		for _, pr := range vr.Publicacao {
			pr := pr
			imp.subItem(tx, "publication", pr.URLDiario.String(), func(sub *gorm.DB) error {
				return imp.reconcilePublication(ctx, sub, pr, nil, &vote.ID)
			})
		}
	}
}

func (imp *Importer) processRelated(ctx context.Context, tx *gorm.DB, records []feed.RelatedRecord, ini *types.Initiative, phase *types.Phase) {
	for _, rr := range records {
		relID := clipStr(rr.ID, maxEventID)
		if relID == "" {
			continue
		}
		rr := rr
		imp.subItem(tx, "related initiative", relID, func(sub *gorm.DB) error {
			if _, err := imp.phaseRecords.AddRelatedInitiative(ctx, sub, &types.RelatedInitiative{
				InitiativeID:     relID,
				InitiativeType:   clipStr(rr.DescTipo, maxDocType),
				InitiativeNumber: clipStr(rr.Nr, maxCommissionNum),
				Legislature:      clipStr(rr.Leg, maxFlag),
				Title:            clip(rr.Titulo, 1<<20),
				EntryDate:        ParseDate(rr.DataEntrada.String()),
				Selection:        clip(rr.Sel, maxSelection),
				PhaseID:          &phase.ID,
			}); err != nil {
				return fmt.Errorf("merging related initiative: %w", err)
			}

			// Link the aggregate cross-reference when the counterpart is
			// already on file; earlier feed order means it may not be yet.
			other, err := imp.initiatives.GetByExternalID(ctx, sub, relID)
			if err != nil {
				if errorsIsNotFound(err) {
					return nil
				}
				return fmt.Errorf("looking up related initiative: %w", err)
			}
			if other.ID == ini.ID {
				return nil
			}
			if err := imp.initiatives.AppendRelated(ctx, sub, ini, other); err != nil {
				return fmt.Errorf("linking related initiative: %w", err)
			}
			return nil
		})
	}
}

func rawJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
