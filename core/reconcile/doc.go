// Package reconcile decides how a declared object relates to the objects that
// already exist on the appliance, and applies the minimal change.
//
// A reconciliation runs in two phases, mirroring a plan/apply workflow:
//
//  1. Plan: the declaration is validated, the object type's collection is
//     fetched through the Session (once per TTL, see EngineOptions.CacheTTL),
//     ingested into a Collection and matched against the declaration.
//     Decide derives one of NoChange, Create, Update or Delete together with a
//     before/after Diff restricted to the object type's diff fields.
//
//  2. Apply: the decision is executed with a single add, set or del call,
//     followed by the object type's reload call. Check mode stops before any
//     call is made.
//
// # Normalization
//
// The appliance encodes booleans as "0"/"1", enumerations as selection groups
// ({"key": {"value": "label", "selected": 1}}) and collections either as keyed
// objects or as lists. Responses are decoded into an order-preserving Object,
// Ingest resolves the collection shape, and a Normalizer flattens each entry into
// a Record that can be compared with a declaration. Comparison goes through
// Canonical, so 80 and "80" are equal.
//
// # Object types
//
// Each object type implements Adapter: its endpoint, how to read the user
// declaration, which fields to match, compare and report, and how to encode the
// mutation payload. List-only types implement Lister. Types are looked up by
// name through a Registry.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(client, log, reconcile.EngineOptions{})
//	rule, _ := registry.Adapter("firewall_rule")
//
//	desired, err := rule.Desired(map[string]any{"sequence": 10, "interface": "lan"})
//	res, err := engine.Reconcile(ctx, rule, reconcile.Request{
//	    Desired:     desired,
//	    MatchFields: rule.DefaultMatchFields(),
//	    State:       reconcile.StatePresent,
//	}, reconcile.Options{Check: true})
package reconcile
