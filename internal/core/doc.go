// Package core provides the business logic for normalizing IMDb dataset files.
//
// This package has no CLI or database dependencies and can be used by any frontend.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Sources: Registered via [RegisterSource], each describes one IMDb
//     dataset file, its required header columns, and how quotes are read.
//   - Outputs: Registered via [Register], each [OutputDefinition] derives one
//     normalized table from a source [Frame] and knows how to type its
//     columns for loading.
//   - Converter: The entry point of a run. [Converter.Run] reads each source
//     once, writes every output derived from it, and moves on.
//
// # Output Registry
//
// Outputs are registered at init time by the tables package:
//
//	core.Register(core.OutputDefinition{
//	    Info: core.TableInfo{Key: "title_ratings", Source: "title.ratings", FileName: "Title_ratings.tsv"},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "title_id", Type: core.FieldText},
//	        {Name: "average_rating", Type: core.FieldNumeric, Nullable: true},
//	    },
//	    Build: buildTitleRatings,
//	})
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// See error_messages.go for the code reference.
package core
