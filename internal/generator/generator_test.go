package generator

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill_NoTagsLeavesTextUnchanged(t *testing.T) {
	doc := document(
		para("Quarterly report"),
		table(row(cell(para("Region")), cell(para("Total # 12")))),
		para("Signed, ", "the team"),
	)
	before := doc.Body.Text()

	c := &resolve.Counting{Resolver: resolve.Static{}}
	stats := New().Fill(doc, c)

	assert.Equal(t, before, doc.Body.Text())
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, c.Calls)
}

func TestFill_ParagraphsAndCells(t *testing.T) {
	data, err := resolve.NewJSON([]byte(`{"user":{"name":"Ana"},"balance":42,"order":{"id":"A-7"}}`))
	require.NoError(t, err)

	greeting := para("Hello ##user.name, balance: ##balance")
	idCell := para("##order.id")
	missingCell := para("##missing.field")
	doc := document(
		greeting,
		table(
			row(cell(para("Order")), cell(idCell)),
			row(cell(para("Note")), cell(missingCell)),
		),
	)

	stats := New().Fill(doc, data)

	assert.Equal(t, "Hello Ana, balance: 42", greeting.Text())
	assert.Equal(t, "A-7", idCell.Text())
	assert.Equal(t, "", missingCell.Text())
	assert.Equal(t, Stats{Scopes: 3, Fragments: 3, Lookups: 4}, stats)
}

func TestFill_OnlyDottedTagChanges(t *testing.T) {
	doc := document(
		para("Intro"),
		para("Name: ##a.b (keep this)"),
		para("Outro"),
	)

	New().Fill(doc, resolve.Static{"a.b": "X"})

	assert.Equal(t, "Intro\nName: X (keep this)\nOutro", doc.Body.Text())
}

func TestFill_PrunedRowKeepsTagShapedCells(t *testing.T) {
	// The row text is "##" + "name" only across cell boundaries; no cell is
	// examined and nothing is resolved.
	left := para("##")
	right := para("name")
	doc := document(table(row(cell(left), cell(right))))

	c := &resolve.Counting{Resolver: resolve.Static{"name": "X"}}
	New().Fill(doc, c)

	assert.Equal(t, "##", left.Text())
	assert.Equal(t, "name", right.Text())
	assert.Zero(t, c.Calls)
}

func TestFill_TagSplitAcrossFragmentsIsKept(t *testing.T) {
	p := paraRuns(run("Total: #"), run("#amount"))
	doc := document(p)

	c := &resolve.Counting{Resolver: resolve.Static{"amount": "10"}}
	stats := New().Fill(doc, c)

	assert.Equal(t, "Total: ##amount", p.Text())
	assert.Equal(t, 1, stats.Scopes)
	assert.Zero(t, c.Calls)
}

func TestFill_PreservesRunStructure(t *testing.T) {
	first := run("Dear ##name,")
	second := run(" welcome")
	p := paraRuns(first, second)
	doc := document(p)

	New().Fill(doc, resolve.Static{"name": "Ana"})

	require.Len(t, p.Runs, 2)
	assert.Same(t, first, p.Runs[0])
	assert.Same(t, second, p.Runs[1])
	assert.Equal(t, "Dear Ana,", first.Texts[0].Value)
}

func TestInspect(t *testing.T) {
	doc := document(
		para("##name and ##name"),
		table(row(cell(para("##order.id")))),
		para("##missing"),
	)

	reports := New().Inspect(doc, resolve.Static{"name": "Ana", "order.id": "7"})

	require.Len(t, reports, 3)
	assert.Equal(t, TagReport{Tag: "##name", Path: "name", Count: 2, Resolved: true, Value: "Ana"}, reports[0])
	assert.Equal(t, TagReport{Tag: "##order.id", Path: "order.id", Count: 1, Resolved: true, Value: "7"}, reports[1])
	assert.Equal(t, TagReport{Tag: "##missing", Path: "missing", Count: 1}, reports[2])

	// Inspect must not modify the document.
	assert.Equal(t, "##name and ##name\n##order.id\n##missing", doc.Body.Text())
}

func TestInspect_NilData(t *testing.T) {
	doc := document(para("##name"))
	reports := New().Inspect(doc, nil)

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Resolved)
}

func TestGenerate_RoundTrip(t *testing.T) {
	tpl := templateBytes(t, "Hello ##user.name, balance: ##balance", "No tags here")
	data, err := resolve.FromValue(map[string]any{
		"user":    map[string]any{"name": "Ana"},
		"balance": 42,
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	g := New(WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	out, err := g.Generate(bytes.NewReader(tpl), data)
	require.NoError(t, err)

	// The result is positioned at its start.
	raw, err := io.ReadAll(out)
	require.NoError(t, err)

	pkg, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)

	text := pkg.Document.Body.Text()
	assert.Contains(t, text, "Hello Ana, balance: 42")
	assert.Contains(t, text, "No tags here")
	assert.NotContains(t, text, "##")
	assert.Contains(t, logs.String(), "filled template")

	// The output is still a package other docx readers accept.
	_, err = docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
}

func TestGenerate_NoTagsStillSaves(t *testing.T) {
	tpl := templateBytes(t, "Just text")

	out, err := New().Generate(bytes.NewReader(tpl), resolve.Static{})
	require.NoError(t, err)
	assert.Positive(t, out.Len())

	pkg, err := Open(out)
	require.NoError(t, err)
	assert.Contains(t, pkg.Document.Body.Text(), "Just text")
}

// richBody uses elements outside the text model: bookmarks, extra run
// properties, tabs, breaks, a simple field, a content control and table
// properties.
const richBody = `<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
	`<w:bookmarkStart w:id="0" w:name="intro"/>` +
	`<w:r><w:rPr><w:b/><w:highlight w:val="yellow"/><w:caps/></w:rPr><w:t xml:space="preserve">Dear ##name,</w:t></w:r>` +
	`<w:r><w:tab/><w:t xml:space="preserve">see page </w:t></w:r>` +
	`<w:fldSimple w:instr=" PAGE "><w:r><w:t>1</w:t></w:r></w:fldSimple>` +
	`<w:bookmarkEnd w:id="0"/></w:p>` +
	`<w:sdt><w:sdtPr><w:alias w:val="Clause"/></w:sdtPr><w:sdtContent>` +
	`<w:p><w:r><w:t>Clause 4 applies</w:t></w:r></w:p>` +
	`</w:sdtContent></w:sdt>` +
	`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid><w:gridCol w:w="2000"/><w:gridCol w:w="2000"/></w:tblGrid>` +
	`<w:tr><w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr><w:p><w:r><w:t>Total</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>##amount</w:t><w:br/><w:t>EUR &amp; tax</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`

func TestGenerate_KeepsUnmodelledMarkup(t *testing.T) {
	tpl := packageBytes(t, documentXML(richBody))

	out, err := New().Generate(bytes.NewReader(tpl), resolve.Static{"name": "Ana & Bo", "amount": "<10>"})
	require.NoError(t, err)
	raw, err := io.ReadAll(out)
	require.NoError(t, err)

	want := strings.NewReplacer(
		"Dear ##name,", "Dear Ana &amp; Bo,",
		"<w:t>##amount</w:t>", "<w:t>&lt;10&gt;</w:t>",
	).Replace(documentXML(richBody))
	assert.Equal(t, want, partBytes(t, raw, "word/document.xml"))
	assert.Equal(t, contentTypesXML, partBytes(t, raw, "[Content_Types].xml"))
	assert.Equal(t, packageRelsXML, partBytes(t, raw, "_rels/.rels"))
}

func TestGenerate_TagFreeTemplateIsUnchanged(t *testing.T) {
	docXML := documentXML(strings.NewReplacer("##name", "Sir", "##amount", "10").Replace(richBody))
	tpl := packageBytes(t, docXML)

	c := &resolve.Counting{Resolver: resolve.Static{}}
	out, err := New().Generate(bytes.NewReader(tpl), c)
	require.NoError(t, err)
	raw, err := io.ReadAll(out)
	require.NoError(t, err)

	assert.Equal(t, docXML, partBytes(t, raw, "word/document.xml"))
	assert.Contains(t, partBytes(t, raw, "word/document.xml"), "Clause 4 applies")
	assert.Zero(t, c.Calls)
}

func TestGenerate_InvalidPackage(t *testing.T) {
	_, err := New().Generate(strings.NewReader("not a zip archive"), resolve.Static{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse template")
}
