// Package main runs the local artguard HTTP API. It exposes the split and
// patch services over JSON so notebooks and other tools can use them without
// the CLI.
//
// HTTP API
//
//	GET /health
//	    Report liveness: {"status":"healthy"}.
//
//	POST /splits
//	    Body {"items":[{"image_id","stratum"}], "k_folds", "outer_seed",
//	    "inner_seed", "val_fraction", "hash_algorithm"}. Omitted parameters
//	    take the CLI defaults. Returns {"assignment", "folds"}. Invalid
//	    parameters yield 400.
//
//	POST /patches?image_id=ID
//	    Body is an encoded image. Patches are stored as JPEG under the server
//	    home and their records are returned. When image_id is absent a fresh
//	    UUID is used. Undecodable bodies yield 415; images too small to
//	    patch yield 422.
//
// Behaviour
//
//   - Nothing about a split request is persisted.
//   - Responses are JSON. Non-2xx statuses carry {"error": message}.
//   - An access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is 127.0.0.1:8080.
package main
