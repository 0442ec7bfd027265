// Package container implements the policy-backed value container: routing
// header metadata plus a named multiset of typed values behind one CRUD
// contract, independent of the backing strategy.
//
// # Storage Policies
//
// Three interchangeable policies implement the backing store:
//
//   - dynamic: insertion-ordered sequence, linear scan (NewDynamic)
//   - indexed: same sequence plus a name index for O(1) lookup (NewIndexed)
//   - typed: fixed allowed-kind list validated at insertion (NewTyped)
//
// The policy is chosen at construction and never changes; migrating a value
// set to another policy means decoding into a fresh container.
//
// # Error Surface
//
// Every fallible operation has a silent form (zero value or false on
// failure) and a Result-suffixed form returning a *result.Error with a code
// and module tag. The two forms behave identically apart from failure
// reporting, and neither logs.
//
// # Wire Forms
//
// Serialize produces the human-inspectable text envelope, SerializeArray
// the bare concatenated binary values; Decode accepts either and
// DecodeHeader parses only the envelope header, deferring value decoding
// until the value set is first touched.
//
// Containers are not safe for concurrent use; see the safe subpackage.
package container
