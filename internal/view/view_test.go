package view

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/page"
)

var rowID = regexp.MustCompile(`data-customer-id="(\d+)"`)

func rowIDs(html string) []string {
	var ids []string
	for _, m := range rowID.FindAllStringSubmatch(html, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func TestHeadHasTitleAndSearch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Head(&buf, CustomersMetadata))

	out := buf.String()
	assert.Contains(t, out, "<title>Customers</title>")
	assert.Contains(t, out, `data-component="search"`)
	assert.Contains(t, out, `name="query"`)
}

func TestTableRendersRowsInOrder(t *testing.T) {
	var buf bytes.Buffer
	customers := []model.Customer{
		{ID: 9, FirstName: "Zed", Email: "zed@example.com"},
		{ID: 2, FirstName: "Amy", LastName: "Jones"},
	}
	require.NoError(t, MustNew().Table(&buf, customers))

	out := buf.String()
	assert.Equal(t, []string{"9", "2"}, rowIDs(out))
	assert.Contains(t, out, "Amy Jones")
	assert.Contains(t, out, "2 customers")
	assert.NotContains(t, out, `data-empty="true"`)
}

func TestTableEmptyState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Table(&buf, []model.Customer{}))

	out := buf.String()
	assert.Contains(t, out, `data-component="customers-table"`)
	assert.Contains(t, out, `data-count="0"`)
	assert.Contains(t, out, `data-empty="true"`)
	assert.Empty(t, rowIDs(out))
}

func TestTableCountUsesThousandsSeparator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Table(&buf, make([]model.Customer, 1234)))
	assert.Contains(t, buf.String(), "1,234 customers")
}

func TestTableEscapesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Table(&buf, []model.Customer{{ID: 1, FirstName: "<script>alert(1)</script>"}}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestPendingShowsSkeleton(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Pending(&buf, "B-1"))

	out := buf.String()
	assert.Contains(t, out, `id="B-1"`)
	assert.Contains(t, out, `data-component="customers-table-skeleton"`)
	assert.NotContains(t, out, "<table")
}

func TestResolveReady(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Resolve(&buf, "B-1", page.Ready, []model.Customer{{ID: 5, FirstName: "Eve"}}))

	out := buf.String()
	assert.Contains(t, out, `<template id="B-1-content">`)
	assert.Equal(t, []string{"5"}, rowIDs(out))
	assert.Contains(t, out, "replaceChildren")
	assert.Contains(t, out, `"ready"`)
	assert.NotContains(t, out, "customers-table-skeleton")
}

func TestResolveFailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Resolve(&buf, "B-1", page.Failed, nil))

	out := buf.String()
	assert.Contains(t, out, `data-component="customers-error"`)
	assert.NotContains(t, out, "<table")
	assert.Contains(t, out, `"failed"`)
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().ErrorPage(&buf, CustomersMetadata))

	out := buf.String()
	assert.Contains(t, out, "<title>Customers</title>")
	assert.Contains(t, out, `data-component="search"`)
	assert.Contains(t, out, `data-component="customers-error"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</html>"))
}
