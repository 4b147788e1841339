/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docregistry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/docregistry"
	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

func rec(path string) storagemodels.ImplementorRecord {
	return storagemodels.ImplementorRecord{Kind: "struct", Path: path, Label: path}
}

func TestPageLateInstall(t *testing.T) {
	ctx := context.Background()
	page := docregistry.NewPage("core::hash::Hash")

	require.NoError(t, page.Contribute(ctx, "alpha", rec("alpha::R1"), rec("alpha::R2")))
	assert.Nil(t, page.Implementors())

	require.NoError(t, page.Install(ctx))
	require.NoError(t, page.Install(ctx), "installing twice is a no-op")

	impls := page.Implementors()
	require.NotNil(t, impls)
	assert.Equal(t, []storagemodels.ImplementorRecord{rec("alpha::R1"), rec("alpha::R2")}, stripCrate(impls.Records("alpha")))
}

func TestPageSidebarRequiresInstall(t *testing.T) {
	ctx := context.Background()
	page := docregistry.NewPage("syn")
	items := storagemodels.NewSidebarItems().Add("fn", storagemodels.SidebarItem{Name: "parse_ident"})

	err := page.ContributeSidebar(ctx, items)
	assert.True(t, errors.IsNoRegistrar(err), "got %v", err)

	require.NoError(t, page.Install(ctx))
	require.NoError(t, page.ContributeSidebar(ctx, items))
	assert.Equal(t, []storagemodels.ItemKind{"fn"}, page.Sidebar().Items().Kinds())
}

func TestPageDispatch(t *testing.T) {
	ctx := context.Background()
	page := docregistry.NewPage("syn")
	require.NoError(t, page.Install(ctx))

	impl := storagemodels.ImplementorsEnvelope("syn", storagemodels.SingleContribution("syn", rec("syn::Ident")))
	side := storagemodels.SidebarEnvelope("syn", storagemodels.NewSidebarItems().Add("struct", storagemodels.SidebarItem{Name: "Ident"}))

	require.NoError(t, page.Dispatch(ctx, impl))
	require.NoError(t, page.Dispatch(ctx, side))

	err := page.Dispatch(ctx, storagemodels.ImplementorsEnvelope("quote", storagemodels.NewContribution()))
	assert.True(t, errors.IsValidationError(err), "envelopes for other pages are rejected")

	err = page.Dispatch(ctx, storagemodels.Envelope{Kind: storagemodels.PayloadSidebar, Page: "syn"})
	assert.True(t, errors.IsMalformed(err))

	envs := page.Envelopes()
	require.Len(t, envs, 2)
	assert.Equal(t, storagemodels.PayloadImplementors, envs[0].Kind)
	assert.Equal(t, storagemodels.PayloadSidebar, envs[1].Kind)
}

func TestPageEnvelopesEmpty(t *testing.T) {
	page := docregistry.NewPage("empty")
	assert.Empty(t, page.Envelopes())
	require.NoError(t, page.Install(context.Background()))
	assert.Empty(t, page.Envelopes())
}

func stripCrate(recs []storagemodels.ImplementorRecord) []storagemodels.ImplementorRecord {
	out := make([]storagemodels.ImplementorRecord, len(recs))
	for i, r := range recs {
		r.Crate = ""
		out[i] = r
	}
	return out
}
