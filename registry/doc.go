/*
Package registry manages implementor registration for documentation pages,
along with the type and index-map registries used by the storage layer.

Handoff slots:
A Slot is the page-global rendezvous between contributors and a registrar.
It holds an installed registrar, a pending accumulator, or nothing.
Contributors that arrive before the registrar park their payload in the
accumulator; Install drains it in arrival order before returning:

	slot := registry.NewImplementorSlot(registry.WithName("core::hash::Hash"))
	registry.Contribute(ctx, slot, "pest", pestRecords...) // parked
	impls := registry.NewImplementors()
	slot.Install(ctx, impls)                                // drains pest
	registry.Contribute(ctx, slot, "quote", quoteRecords...) // direct

Sidebar slots are built without the pending fallback: the sidebar builder
must be installed before anything is contributed.

Registrars:
Implementors merges contributions per crate, ignoring duplicate records and
logging (never failing on) malformed input. Sidebar does the same for
kind-to-items indexes.

Default:
Default is a process-wide implementor slot so that compiled-in contributors
can register from init() functions, in initializer order:

	func init() {
	    registry.RegisterImplementors("pest", storagemodels.ImplementorRecord{
	        Kind: "struct", Path: "pest::Span", Label: "Span<'i>",
	    })
	}

Type Registry:
Maps entity type names to decode functions for polymorphic storage reads:

	registry.RegisterType("ImplementorSet", decodeImplementorSet)

Index Map Registry:
Associates Go types with DynamoDB key templates:

	registry.RegisterIndexMap[storagemodels.ImplementorSet](map[string]string{
	    "PK": "TRAIT#{Trait}",
	    "SK": "CRATE#{Crate}",
	})

All registries are safe for concurrent use.
*/
package registry
