/*
Package ports defines the driven ports (interfaces) of the turing service.

These interfaces decouple the HTTP and MCP surfaces from the storage backend.

# Key Interfaces

  - DefinitionStore: saves and loads named machine definitions (memory or Redis).

Implementations verify themselves with RunDefinitionStoreContract.
*/
package ports
