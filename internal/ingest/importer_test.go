package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/passosperdidos/parlamento-backend/internal/db"
	"github.com/passosperdidos/parlamento-backend/internal/feed"
	"github.com/passosperdidos/parlamento-backend/internal/logger"
	"github.com/passosperdidos/parlamento-backend/internal/repos"
	"github.com/passosperdidos/parlamento-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return gdb
}

func newTestImporter(t *testing.T) (*Importer, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	imp := NewImporter(
		gdb,
		feed.NewClient(log),
		repos.NewLegislatureRepo(gdb, log),
		repos.NewInitiativeRepo(gdb, log),
		repos.NewAuthorRepo(gdb, log),
		repos.NewPhaseRepo(gdb, log),
		repos.NewAttachmentRepo(gdb, log),
		repos.NewPublicationRepo(gdb, log),
		repos.NewVoteRepo(gdb, log),
		repos.NewCommissionRepo(gdb, log),
		repos.NewDebateRepo(gdb, log),
		repos.NewPhaseRecordRepo(gdb, log),
		log,
	)
	return imp, gdb
}

func writeFeed(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("writing feed fixture: %v", err)
	}
	return path
}

const richRecord = `{
	"IniId": "121452",
	"IniNr": "13",
	"IniLeg": "XVI",
	"IniTipo": "J",
	"IniDescTipo": "Projeto de Lei",
	"IniTitulo": "Altera o regime de arrendamento urbano",
	"IniLinkTexto": "https://app.parlamento.pt/texto/121452",
	"DataInicioleg": "2024-03-25",
	"IniAutorDeputados": [
		{"nome": "Maria Silva", "GP": "PS", "idCadastro": "4001"},
		{"nome": "João Costa", "GP": "PS", "idCadastro": "4002"}
	],
	"IniAutorGruposParlamentares": [{"GP": "PS"}],
	"IniAutorOutros": {"nome": "Assembleia Legislativa", "sigla": "ALRAM"},
	"IniAnexos": {"anexoNome": "Exposição de motivos", "anexoFich": "https://app.parlamento.pt/anexo/1"},
	"IniEventos": [
		{
			"EvtId": "9001",
			"OevId": "7001",
			"Fase": "Entrada",
			"DataFase": "2024-03-25",
			"CodigoFase": "EN",
			"AnexosFase": [{"anexoNome": "Parecer", "anexoFich": "https://app.parlamento.pt/anexo/2"}],
			"PublicacaoFase": [{"pubdt": "2024-03-26", "pubNr": "12", "URLDiario": "https://debates.parlamento.pt/d/12", "pag": ["5", "6"]}],
			"Comissao": [{
				"Nome": "Comissão de Economia",
				"IdComissao": "C5",
				"Competente": "S",
				"DataDistribuicao": "2024-03-27",
				"Documentos": [{"TituloDocumento": "Relatório", "TipoDocumento": "Relatório", "DataDocumento": "2024-04-01", "URL": "https://app.parlamento.pt/doc/9"}],
				"Relatores": [{"nome": "Rui Lopes", "GP": "PSD", "data": "2024-03-28"}],
				"Votacao": [{"data": "2024-04-02", "resultado": "Aprovado", "favor": ["PS"], "contra": ["CH"]}]
			}],
			"Intervencoesdebates": [{
				"dataReuniaoPlenaria": "2024-04-03",
				"faseDebate": "Generalidade",
				"linkVideo": [{"link": "https://videos.parlamento.pt/v/1"}],
				"deputados": [{"nome": "Maria Silva", "GP": "PS"}],
				"membrosGoverno": {"nome": "Ministro X", "cargo": "Ministro", "governo": "XXIV"}
			}],
			"TextosAprovados": [{"titulo": "Texto final", "tipo": "DL", "data": "2024-04-10", "url": "https://app.parlamento.pt/texto/final"}, "Texto avulso"],
			"RecursoGP": [{"GP": "CH", "data": "2024-04-04"}],
			"Votacao": [{
				"id": "v1",
				"data": "2024-04-05",
				"resultado": "Aprovado",
				"detalhe": "A Favor: <I>PS</I>, <I>BE</I><BR>Contra: <I>CH</I><BR>Abstenção: <I>IL</I>",
				"reuniao": "88",
				"unanime": "não",
				"publicacao": [{"pubdt": "2024-04-06", "URLDiario": "https://debates.parlamento.pt/d/13"}]
			}],
			"IniciativasConjuntas": [{"id": "121000", "descTipo": "Projeto de Lei", "nr": "10", "leg": "XVI", "titulo": "Iniciativa conjunta"}]
		},
		{
			"Fase": "Baixa comissão",
			"DataFase": "2024-04-07"
		}
	]
}`

func importFeed(t *testing.T, imp *Importer, payload string, opts Options) *Counters {
	t.Helper()
	opts.Source = writeFeed(t, payload)
	counters, err := imp.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	return counters
}

func count(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("counting %T: %v", model, err)
	}
	return n
}

func TestImportBuildsFullGraph(t *testing.T) {
	imp, gdb := newTestImporter(t)
	counters := importFeed(t, imp, "["+richRecord+"]", Options{})

	if counters.Processed != 1 || counters.Created != 1 || counters.Failed != 0 {
		t.Fatalf("counters wrong: %+v", counters)
	}

	var ini types.Initiative
	if err := gdb.Preload("Authors").Preload("Phases").Preload("Votes").Preload("Attachments").
		Where("external_id = ?", "121452").First(&ini).Error; err != nil {
		t.Fatalf("loading initiative: %v", err)
	}
	if ini.Title != "Altera o regime de arrendamento urbano" || ini.Type != "Projeto de Lei" {
		t.Fatalf("headline wrong: %q %q", ini.Title, ini.Type)
	}
	if ini.Date == nil || ini.Date.Year() != 2024 {
		t.Fatalf("date wrong: %v", ini.Date)
	}
	// 2 deputies + 1 group + 1 other
	if len(ini.Authors) != 4 {
		t.Fatalf("want 4 authors, got %d", len(ini.Authors))
	}
	if len(ini.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(ini.Phases))
	}
	if len(ini.Votes) != 1 {
		t.Fatalf("want 1 vote, got %d", len(ini.Votes))
	}
	if len(ini.Attachments) != 1 {
		t.Fatalf("want 1 top-level attachment, got %d", len(ini.Attachments))
	}

	vote := ini.Votes[0]
	if vote.VoteID == nil || *vote.VoteID != "v1" || vote.Result != "Aprovado" {
		t.Fatalf("vote wrong: %+v", vote)
	}
	var breakdown Breakdown
	if err := json.Unmarshal(vote.Breakdown, &breakdown); err != nil {
		t.Fatalf("breakdown not json: %v", err)
	}
	if len(breakdown.AFavor) != 2 || breakdown.AFavor[0] != "PS" || len(breakdown.Contra) != 1 || len(breakdown.Abstencao) != 1 {
		t.Fatalf("breakdown wrong: %+v", breakdown)
	}

	if n := count(t, gdb, &types.Commission{}); n != 1 {
		t.Fatalf("want 1 commission, got %d", n)
	}
	if n := count(t, gdb, &types.CommissionDocument{}); n != 1 {
		t.Fatalf("want 1 commission document, got %d", n)
	}
	if n := count(t, gdb, &types.CommissionVote{}); n != 1 {
		t.Fatalf("want 1 commission vote, got %d", n)
	}
	if n := count(t, gdb, &types.Debate{}); n != 1 {
		t.Fatalf("want 1 debate, got %d", n)
	}
	if n := count(t, gdb, &types.ApprovedText{}); n != 2 {
		t.Fatalf("want 2 approved texts, got %d", n)
	}
	if n := count(t, gdb, &types.Publication{}); n != 2 {
		t.Fatalf("want 2 publications, got %d", n)
	}
	if n := count(t, gdb, &types.RelatedInitiative{}); n != 1 {
		t.Fatalf("want 1 related initiative record, got %d", n)
	}

	var avulso types.ApprovedText
	if err := gdb.Where("text_type = ?", "Unknown").First(&avulso).Error; err != nil {
		t.Fatalf("string approved text missing: %v", err)
	}
	if avulso.Title != "Texto avulso" {
		t.Fatalf("string approved text wrong: %q", avulso.Title)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	imp, gdb := newTestImporter(t)
	importFeed(t, imp, "["+richRecord+"]", Options{})

	before := map[string]int64{
		"initiative":  count(t, gdb, &types.Initiative{}),
		"author":      count(t, gdb, &types.Author{}),
		"vote":        count(t, gdb, &types.Vote{}),
		"publication": count(t, gdb, &types.Publication{}),
		"commission":  count(t, gdb, &types.Commission{}),
		"attachment":  count(t, gdb, &types.Attachment{}),
		"rapporteur":  count(t, gdb, &types.Rapporteur{}),
		"debate":      count(t, gdb, &types.Debate{}),
	}

	counters := importFeed(t, imp, "["+richRecord+"]", Options{})
	if counters.Updated != 1 || counters.Created != 0 {
		t.Fatalf("second run should update, got %+v", counters)
	}

	after := map[string]int64{
		"initiative":  count(t, gdb, &types.Initiative{}),
		"author":      count(t, gdb, &types.Author{}),
		"vote":        count(t, gdb, &types.Vote{}),
		"publication": count(t, gdb, &types.Publication{}),
		"commission":  count(t, gdb, &types.Commission{}),
		"attachment":  count(t, gdb, &types.Attachment{}),
		"rapporteur":  count(t, gdb, &types.Rapporteur{}),
		"debate":      count(t, gdb, &types.Debate{}),
	}
	for table, n := range before {
		if after[table] != n {
			t.Fatalf("%s grew on re-import: %d -> %d", table, n, after[table])
		}
	}

	// The keyed phase keeps its row; the keyless one has no stable
	// identity and is remade, with membership replacement retiring the
	// stale row from the initiative.
	var keyedCount int64
	if err := gdb.Model(&types.Phase{}).Where("evt_id = ? AND oev_id = ?", "9001", "7001").Count(&keyedCount).Error; err != nil {
		t.Fatalf("counting keyed phase: %v", err)
	}
	if keyedCount != 1 {
		t.Fatalf("keyed phase duplicated: %d rows", keyedCount)
	}
	var ini types.Initiative
	if err := gdb.Preload("Phases").Where("external_id = ?", "121452").First(&ini).Error; err != nil {
		t.Fatalf("loading initiative: %v", err)
	}
	if len(ini.Phases) != 2 {
		t.Fatalf("want 2 linked phases after re-import, got %d", len(ini.Phases))
	}
}

func TestImportUpdatesChangedTitle(t *testing.T) {
	imp, gdb := newTestImporter(t)
	importFeed(t, imp, `[{"IniId": "500", "IniLeg": "XVI", "IniTitulo": "Antigo", "IniDescTipo": "Projeto de Lei"}]`, Options{})
	importFeed(t, imp, `[{"IniId": "500", "IniLeg": "XVI", "IniTitulo": "Novo título", "IniDescTipo": "Projeto de Lei"}]`, Options{})

	var ini types.Initiative
	if err := gdb.Where("external_id = ?", "500").First(&ini).Error; err != nil {
		t.Fatalf("loading: %v", err)
	}
	if ini.Title != "Novo título" {
		t.Fatalf("title not updated: %q", ini.Title)
	}
	if n := count(t, gdb, &types.Initiative{}); n != 1 {
		t.Fatalf("duplicate initiative rows: %d", n)
	}
}

func TestImportSharesAuthorsAcrossInitiatives(t *testing.T) {
	imp, gdb := newTestImporter(t)
	payload := `[
		{"IniId": "601", "IniLeg": "XVI", "IniTitulo": "A", "IniAutorGruposParlamentares": [{"GP": "PS"}]},
		{"IniId": "602", "IniLeg": "XVI", "IniTitulo": "B", "IniAutorGruposParlamentares": [{"GP": "PS"}]}
	]`
	importFeed(t, imp, payload, Options{})

	if n := count(t, gdb, &types.Author{}); n != 1 {
		t.Fatalf("author not shared: %d rows", n)
	}
	if n := count(t, gdb, &types.Legislature{}); n != 1 {
		t.Fatalf("legislature not shared: %d rows", n)
	}
}

func TestImportFaultIsolation(t *testing.T) {
	imp, gdb := newTestImporter(t)
	records := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		if i == 4 {
			// No IniId: must fail alone.
			records = append(records, `{"IniTitulo": "Sem identidade", "IniLeg": "XVI"}`)
			continue
		}
		records = append(records, fmt.Sprintf(`{"IniId": "7%02d", "IniLeg": "XVI", "IniTitulo": "Iniciativa %d"}`, i, i))
	}
	payload := "[" + records[0]
	for _, r := range records[1:] {
		payload += "," + r
	}
	payload += "]"

	counters := importFeed(t, imp, payload, Options{})
	if counters.Processed != 9 || counters.Failed != 1 {
		t.Fatalf("fault isolation broken: %+v", counters)
	}
	if n := count(t, gdb, &types.Initiative{}); n != 9 {
		t.Fatalf("want 9 initiatives, got %d", n)
	}
}

func TestImportLimitAndResume(t *testing.T) {
	imp, gdb := newTestImporter(t)
	payload := `[
		{"IniId": "801", "IniLeg": "XVI", "IniTitulo": "Um"},
		{"IniId": "802", "IniLeg": "XVI", "IniTitulo": "Dois"},
		{"IniId": "803", "IniLeg": "XVI", "IniTitulo": "Três"}
	]`

	counters := importFeed(t, imp, payload, Options{Limit: 2})
	if counters.Processed != 2 {
		t.Fatalf("limit ignored: %+v", counters)
	}
	if n := count(t, gdb, &types.Initiative{}); n != 2 {
		t.Fatalf("want 2 initiatives after limited run, got %d", n)
	}

	counters = importFeed(t, imp, payload, Options{ResumeFromID: "803"})
	if counters.Skipped != 2 || counters.Processed != 1 {
		t.Fatalf("resume wrong: %+v", counters)
	}
	if n := count(t, gdb, &types.Initiative{}); n != 3 {
		t.Fatalf("want 3 initiatives after resume, got %d", n)
	}

	if _, err := imp.Run(context.Background(), Options{Source: writeFeed(t, payload), ResumeFromID: "999"}); err == nil {
		t.Fatalf("unknown resume id should error")
	}
}

func TestImportSkipPhases(t *testing.T) {
	imp, gdb := newTestImporter(t)
	importFeed(t, imp, "["+richRecord+"]", Options{SkipPhases: true})

	if n := count(t, gdb, &types.Initiative{}); n != 1 {
		t.Fatalf("initiative missing: %d", n)
	}
	if n := count(t, gdb, &types.Author{}); n == 0 {
		t.Fatalf("authors should still import")
	}
	if n := count(t, gdb, &types.Phase{}); n != 0 {
		t.Fatalf("phases should be skipped, got %d", n)
	}
	if n := count(t, gdb, &types.Vote{}); n != 0 {
		t.Fatalf("votes should be skipped, got %d", n)
	}
}

func TestImportLinksRelatedInitiativeWhenOnFile(t *testing.T) {
	imp, gdb := newTestImporter(t)
	payload := `[
		{"IniId": "121000", "IniLeg": "XVI", "IniTitulo": "Contraparte"},
		` + richRecord + `
	]`
	importFeed(t, imp, payload, Options{})

	var ini types.Initiative
	if err := gdb.Preload("RelatedInitiatives").Where("external_id = ?", "121452").First(&ini).Error; err != nil {
		t.Fatalf("loading: %v", err)
	}
	if len(ini.RelatedInitiatives) != 1 || ini.RelatedInitiatives[0].ExternalID != "121000" {
		t.Fatalf("related link wrong: %+v", ini.RelatedInitiatives)
	}

	// The reference is directed; the counterpart gains no inverse link.
	var other types.Initiative
	if err := gdb.Preload("RelatedInitiatives").Where("external_id = ?", "121000").First(&other).Error; err != nil {
		t.Fatalf("loading counterpart: %v", err)
	}
	if len(other.RelatedInitiatives) != 0 {
		t.Fatalf("inverse link should not exist: %+v", other.RelatedInitiatives)
	}
}

func TestReimportKeepsEnrichedColumns(t *testing.T) {
	imp, gdb := newTestImporter(t)
	importFeed(t, imp, "["+richRecord+"]", Options{})

	// Summary and publication columns are written by a separate
	// enrichment pass, never by the feed.
	updates := map[string]interface{}{
		"description":      "Resumo gerado",
		"publication_url":  "https://dre.pt/dr/123",
		"publication_date": "2024-05-01",
	}
	if err := gdb.Model(&types.Initiative{}).Where("external_id = ?", "121452").Updates(updates).Error; err != nil {
		t.Fatalf("seeding enriched columns: %v", err)
	}

	importFeed(t, imp, "["+richRecord+"]", Options{})

	var ini types.Initiative
	if err := gdb.Where("external_id = ?", "121452").First(&ini).Error; err != nil {
		t.Fatalf("loading: %v", err)
	}
	if ini.Description == nil || *ini.Description != "Resumo gerado" {
		t.Fatalf("description wiped on re-import: %v", ini.Description)
	}
	if ini.PublicationURL == nil || *ini.PublicationURL != "https://dre.pt/dr/123" {
		t.Fatalf("publication url wiped on re-import: %v", ini.PublicationURL)
	}
	if ini.PublicationDate == nil {
		t.Fatalf("publication date wiped on re-import")
	}
	// Feed-sourced columns still refresh.
	if ini.Title != "Altera o regime de arrendamento urbano" {
		t.Fatalf("title wrong after re-import: %q", ini.Title)
	}
}

func TestImportSkipsFailingSubItem(t *testing.T) {
	imp, gdb := newTestImporter(t)
	// Cap rapporteurs at one per commission so the second insert is
	// rejected by the store, the way a constraint violation would be.
	if err := gdb.Exec("CREATE UNIQUE INDEX idx_rapporteur_one_per_commission ON rapporteur(commission_id)").Error; err != nil {
		t.Fatalf("creating index: %v", err)
	}

	payload := `[{
		"IniId": "910",
		"IniLeg": "XVI",
		"IniTitulo": "Com relator a mais",
		"IniAutorGruposParlamentares": [{"GP": "PS"}],
		"IniEventos": [{
			"EvtId": "9100",
			"OevId": "7100",
			"Fase": "Entrada",
			"DataFase": "2024-05-02",
			"Comissao": [{
				"Nome": "Comissão de Assuntos Constitucionais",
				"IdComissao": "C1",
				"Relatores": [
					{"nome": "Ana Matos", "GP": "PS", "data": "2024-05-03"},
					{"nome": "Bruno Faria", "GP": "PSD", "data": "2024-05-04"}
				],
				"Documentos": [{"TituloDocumento": "Nota de admissibilidade", "TipoDocumento": "Nota", "DataDocumento": "2024-05-05"}]
			}]
		}]
	}]`

	counters := importFeed(t, imp, payload, Options{})
	if counters.Processed != 1 || counters.Failed != 0 {
		t.Fatalf("record should survive a failing sub-item: %+v", counters)
	}
	if n := count(t, gdb, &types.Rapporteur{}); n != 1 {
		t.Fatalf("want 1 rapporteur after rejection, got %d", n)
	}
	// Siblings of the rejected sub-item still land.
	if n := count(t, gdb, &types.CommissionDocument{}); n != 1 {
		t.Fatalf("want 1 commission document, got %d", n)
	}
	if n := count(t, gdb, &types.Commission{}); n != 1 {
		t.Fatalf("want 1 commission, got %d", n)
	}
	var ini types.Initiative
	if err := gdb.Preload("Phases").Where("external_id = ?", "910").First(&ini).Error; err != nil {
		t.Fatalf("initiative should persist: %v", err)
	}
	if len(ini.Phases) != 1 {
		t.Fatalf("want 1 phase, got %d", len(ini.Phases))
	}
}

func TestCollectStatsAfterImport(t *testing.T) {
	imp, gdb := newTestImporter(t)
	importFeed(t, imp, "["+richRecord+"]", Options{})

	stats, err := CollectStats(context.Background(), gdb, 5)
	if err != nil {
		t.Fatalf("collecting stats: %v", err)
	}
	counts := map[string]int64{}
	for _, tc := range stats.Tables {
		counts[tc.Table] = tc.Count
	}
	if counts["initiative"] != 1 {
		t.Fatalf("initiative count wrong: %+v", counts)
	}
	if counts["author"] != 4 {
		t.Fatalf("author count wrong: %+v", counts)
	}
	if len(stats.TopVoteResults) != 1 || stats.TopVoteResults[0].Result != "Aprovado" {
		t.Fatalf("vote results wrong: %+v", stats.TopVoteResults)
	}
}
