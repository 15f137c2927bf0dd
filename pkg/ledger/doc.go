// Package ledger is the persisted, reference-counted record of every
// dependency unit plugins have registered in a project.
//
// The ledger is a JSON document with one object per kind:
//
//	{
//	  "declarations": {"use_frameworks": {"declaration": "use_frameworks!", "count": 2}},
//	  "sources":      {"cdn": {"source": "https://cdn.cocoapods.org/", "count": 1}},
//	  "libraries":    {"AFNetworking": {"name": "AFNetworking", "spec": "~> 4.0", "count": 3}}
//	}
//
// Counts never go below zero. An entry whose count reaches zero is deleted,
// so every entry present in the ledger is one the Podfile must carry.
package ledger
