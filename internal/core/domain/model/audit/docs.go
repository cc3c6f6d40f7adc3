// Package audit provides the domain model for the append-only trail of domain
// events.
//
// The package includes:
//   - Event: An immutable record tying an event kind to an entity (type, id)
//     pair with an optional payload, actor, and correlation id
//   - Kind: The set of recordable event kinds
//
// Events are never updated or deleted after creation, and reference entities
// without foreign keys so records outlive what they describe.
package audit
