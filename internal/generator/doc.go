// Package generator provides the template-based code generation toolkit
// the envied generators are built on.
//
// # Features
//
//   - Template rendering with helper functions and caching
//   - Validated file operations with dry-run support
//   - Transaction support for atomic multi-file output
//
// # Transactions
//
// Every generated class unit is written through a transaction so a
// failing unit never leaves a partial file behind:
//
//	tx := generator.NewTransaction()
//	tx.AddFile("app_config.envied.go", content, 0644)
//
//	if err := tx.Commit(); err != nil {
//	    // All files rolled back automatically on error
//	    return err
//	}
package generator
