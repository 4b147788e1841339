/*
Package storagemodels defines the data structures used throughout docregistry.

Key Types:

Contribution:
An ordered mapping from crate name to the implementor records that crate
provides for one capability page. Crate order is first-insertion order and
adding to an existing crate concatenates:

	c := storagemodels.NewContribution().
	    Add("pest", storagemodels.ImplementorRecord{Kind: "struct", Path: "pest::Span", Label: "Span<'i>"}).
	    Add("quote", storagemodels.RawRecord(`impl Hash for Ident`))

SidebarItems:
An ordered mapping from item kind label to (name, description) pairs:

	items := storagemodels.NewSidebarItems().
	    Add("enum", storagemodels.SidebarItem{Name: "Abi"}).
	    Add("fn", storagemodels.SidebarItem{Name: "parse_ident"})

Envelope:
The tagged variant carrying either payload shape together with the page it
targets. Decoders produce envelopes and Site.Dispatch routes them.

ImplementorSet:
The persisted form of one crate's records on one page.

QueryParams and StreamResult:
Parameters and results of datastore queries and streams.
*/
package storagemodels
