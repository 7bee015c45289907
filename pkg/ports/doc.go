/*
Package ports defines the driven ports (interfaces) consumed by the renaming core.

These interfaces decouple renaming sessions from where their integers come from,
allowing one process-local counter, or a counter shared across processes, to back
any number of sessions.

# Key Interfaces

  - IDSource: A monotonic integer source ("fetch and advance").
*/
package ports
