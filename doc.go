/*
Package docregistry assembles the cross-crate indexes of a generated
documentation site: which types implement a capability, and what items each
crate exposes in its sidebar.

Crates contribute independently and in any order. Each contribution is handed
to the registrar installed on the target page; a contribution that arrives
before the page has installed its registrar waits in the page's pending slot
and is drained, in arrival order, when the registrar is installed.

Basic Usage:

	site := docregistry.NewSite(docregistry.WithAutoInstall())

	envs, _ := processor.Load(ctx, "doc/implementors", "doc/syn/sidebar-items.js")
	site.DispatchAll(ctx, envs)

	hash := site.Page("core::hash::Hash")
	for _, crate := range hash.Implementors().Crates() {
	    fmt.Println(crate, hash.Implementors().Records(crate))
	}

Snapshots of a page's implementors can be saved to and restored from any
datastore.DataStore[storagemodels.ImplementorSet]:

	snapshots := docregistry.NewSnapshotStore(store)
	snapshots.Save(ctx, hash)
	snapshots.Restore(ctx, docregistry.NewPage("core::hash::Hash"))

Restoring contributes the saved sets through the page's slot, so the same
ordering and duplicate rules apply as for live contributions.
*/
package docregistry
