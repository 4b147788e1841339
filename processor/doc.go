/*
Package processor decodes emitted documentation payload files into envelopes
that can be dispatched to registry slots.

Supported inputs:

Legacy implementor files, one assignment per crate followed by the
register-or-pend handoff:

	(function() {var implementors = {};
	implementors["aho_corasick"] = ["impl <a ...>Hash</a> for <a class=\"struct\" ...>Match</a>",];
	...
	})()

The trait path comes from the file location, so
implementors/core/hash/trait.Hash.js targets the page core::hash::Hash.
Pre-rendered fragments are converted to structured records; the fragment is
kept in the record's Raw field.

Legacy sidebar files:

	initSidebarItems({"enum":[["Abi",""],["BinOp",""]],"fn":[["parse_ident",""]]});

The crate is the name of the directory holding the file.

Manifests in YAML or JSON, one document per payload:

	kind: implementors
	trait: core::hash::Hash
	implementors:
	  pest:
	    - kind: struct
	      path: pest::Position
	      label: Position<'i>
	---
	kind: sidebar
	crate: syn
	items:
	  enum: [[Abi, ""], [BinOp, ""]]

A JSON array of manifests is accepted as well. Files that cannot be decoded
yield an errors.MalformedPayloadError; Load logs and skips them.
*/
package processor
