// Package all wires every built-in storage backend into the storage factory.
//
// Importing it (normally as a blank import from the CLI) runs the init
// functions of the concrete backends, which register their factories with
// the storage package:
//
//   - "sqlite"   (crashclean/internal/storage/sqlite)
//   - "postgres" (crashclean/internal/storage/postgres)
package all

import (
	_ "crashclean/internal/storage/postgres"
	_ "crashclean/internal/storage/sqlite"
)
