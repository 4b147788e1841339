/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docregistry_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/docregistry"
	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/storagemodels"
)

func TestSiteLazyPages(t *testing.T) {
	site := docregistry.NewSite()

	_, ok := site.Lookup("core::hash::Hash")
	assert.False(t, ok)

	p1 := site.Page("core::hash::Hash")
	p2 := site.Page("core::hash::Hash")
	assert.Same(t, p1, p2)
	site.Page("core::fmt::Debug")

	assert.Equal(t, []string{"core::fmt::Debug", "core::hash::Hash"}, site.Names())
}

func TestSiteDispatchBeforeInstall(t *testing.T) {
	ctx := context.Background()
	site := docregistry.NewSite()

	require.NoError(t, site.Dispatch(ctx, storagemodels.ImplementorsEnvelope("core::hash::Hash",
		storagemodels.SingleContribution("alpha", rec("alpha::R1")))))
	require.NoError(t, site.Dispatch(ctx, storagemodels.ImplementorsEnvelope("core::hash::Hash",
		storagemodels.SingleContribution("beta", rec("beta::S1")))))

	require.NoError(t, site.Install(ctx))

	impls := site.Page("core::hash::Hash").Implementors()
	assert.Equal(t, []storagemodels.CrateName{"alpha", "beta"}, impls.Crates())
}

func TestSiteDispatchAll(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	site := docregistry.NewSite(docregistry.WithAutoInstall())

	envs := []storagemodels.Envelope{
		storagemodels.ImplementorsEnvelope("core::hash::Hash", storagemodels.SingleContribution("pest", rec("pest::Position"))),
		{Kind: storagemodels.PayloadSidebar, Page: "syn", Source: "broken.yaml"},
		storagemodels.SidebarEnvelope("syn", storagemodels.NewSidebarItems().
			Add("enum", storagemodels.SidebarItem{Name: "Abi"}, storagemodels.SidebarItem{Name: "BinOp"}).
			Add("fn", storagemodels.SidebarItem{Name: "parse_ident"})),
	}

	assert.Equal(t, 2, site.DispatchAll(ctx, envs))
	assert.Contains(t, logs.String(), "broken.yaml")

	out := site.Envelopes()
	require.Len(t, out, 2)
	assert.Equal(t, "core::hash::Hash", out[0].Page)
	assert.Equal(t, "syn", out[1].Page)
	assert.Equal(t, []storagemodels.SidebarItem{{Name: "Abi"}, {Name: "BinOp"}}, out[1].Sidebar.Items("enum"))
}

func TestSiteConcurrentPages(t *testing.T) {
	ctx := context.Background()
	site := docregistry.NewSite(docregistry.WithAutoInstall())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env := storagemodels.ImplementorsEnvelope("core::hash::Hash",
				storagemodels.SingleContribution(storagemodels.CrateName(fmt.Sprintf("crate%02d", i)), rec("T")))
			assert.NoError(t, site.Dispatch(ctx, env))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"core::hash::Hash"}, site.Names())
	assert.Len(t, site.Page("core::hash::Hash").Implementors().Crates(), 20)
}
