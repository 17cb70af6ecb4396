// Package view renders the customers dashboard markup: the page shell with its
// search form, the table skeleton, the customers table and the error block.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/page"
)

//go:embed templates/*.html
var templateFS embed.FS

// Metadata is what the page exposes to the document head.
type Metadata struct {
	Title string
}

// CustomersMetadata is the static metadata of the customers page.
var CustomersMetadata = Metadata{Title: "Customers"}

// TableProps is the input of the customers table.
type TableProps struct {
	Customers []model.Customer
}

type shellData struct {
	Meta Metadata
}

type boundaryData struct {
	ID     string
	State  string
	Failed bool
	Table  TableProps
}

// Views holds the parsed templates. It is safe for concurrent use.
type Views struct {
	t *template.Template
}

func New() (*Views, error) {
	t, err := template.New("customers").Funcs(template.FuncMap{
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"rows":  func(n int) []struct{} { return make([]struct{}, n) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{t: t}, nil
}

// MustNew is New for package initialization and tests.
func MustNew() *Views {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Head writes the document head, the layout container and the search form.
func (v *Views) Head(w io.Writer, meta Metadata) error {
	return v.t.ExecuteTemplate(w, "head", shellData{Meta: meta})
}

// Tail closes the layout container and the document.
func (v *Views) Tail(w io.Writer) error {
	return v.t.ExecuteTemplate(w, "tail", nil)
}

// Pending writes the boundary element holding the table skeleton.
func (v *Views) Pending(w io.Writer, id string) error {
	return v.t.ExecuteTemplate(w, "boundary_pending", boundaryData{ID: id})
}

// Ready writes the boundary element with the table already in place.
func (v *Views) Ready(w io.Writer, id string, customers []model.Customer) error {
	return v.t.ExecuteTemplate(w, "boundary_ready", boundaryData{
		ID:    id,
		Table: TableProps{Customers: customers},
	})
}

// Resolve writes the out-of-order chunk that replaces the skeleton of the
// pending boundary id with the table, or with the error block when failed.
func (v *Views) Resolve(w io.Writer, id string, state page.State, customers []model.Customer) error {
	return v.t.ExecuteTemplate(w, "resolve", boundaryData{
		ID:     id,
		State:  state.String(),
		Failed: state == page.Failed,
		Table:  TableProps{Customers: customers},
	})
}

// ErrorPage writes a complete document showing the error block instead of the table.
func (v *Views) ErrorPage(w io.Writer, meta Metadata) error {
	return v.t.ExecuteTemplate(w, "error_page", shellData{Meta: meta})
}

// Table writes the customers table on its own.
func (v *Views) Table(w io.Writer, customers []model.Customer) error {
	return v.t.ExecuteTemplate(w, "table", TableProps{Customers: customers})
}
