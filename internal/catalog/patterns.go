package catalog

var designPatterns = []Entry{
	{
		Slug:    "modular-architecture",
		Name:    "Modular Architecture",
		Summary: "Split the system along stable boundaries so modules can change independently.",
		Definition: "Organize code into modules that own one concern each, expose a small deliberate " +
			"interface, and hide everything else. Dependencies point in one direction, from volatile " +
			"outer layers toward stable inner ones, so a change in one module does not cascade.",
		WhenToUse: []string{
			"A codebase where every change touches many files and review is slow",
			"More than one team works in the same repository",
			"You need to replace an implementation (storage, transport, vendor) without rewriting callers",
		},
		Steps: []string{
			"Identify the concerns that change for different reasons and at different speeds",
			"Draw module boundaries around each concern and name the owner",
			"Define the interface each module exposes; everything else becomes internal",
			"Point dependencies from the volatile toward the stable, never back",
			"Enforce the boundaries mechanically with package visibility or lint rules",
		},
		Pitfalls: []string{
			"Boundaries drawn around technical layers instead of concerns, producing modules that all change together",
			"Interfaces with one implementation and one caller, which is indirection without independence",
		},
		Example: "A telemetry subsystem keeps consent, storage, batching, and reporting in separate " +
			"packages. Swapping the storage layout touches one package; the collector and the " +
			"reports never notice.",
	},
	{
		Slug:    "api-integration",
		Name:    "API Integration",
		Summary: "Treat every external API as unreliable: isolate the contract, bound the waiting, plan the retry.",
		Definition: "Code that calls a third-party API inherits that API's outages, latency spikes, " +
			"and breaking changes. A disciplined integration wraps the vendor behind an internal " +
			"interface, sets explicit timeouts, retries idempotent calls with backoff, and keeps the " +
			"vendor's types out of the core domain.",
		WhenToUse: []string{
			"Any call that leaves your process boundary",
			"A vendor SDK starts leaking its types and error shapes through the codebase",
			"Preparing for a second provider or a sandbox/production split",
		},
		Steps: []string{
			"Define the internal interface in your domain's vocabulary, not the vendor's",
			"Implement it with the vendor client behind the interface, converting types at the edge",
			"Set a timeout on every call and make retry policy explicit per operation",
			"Make retried operations idempotent, with request IDs where the API supports them",
			"Record every call's outcome so rate limits and error spikes are visible before users see them",
		},
		Pitfalls: []string{
			"Retrying non-idempotent operations and double-charging, double-sending, or double-creating",
			"Infinite or unbounded retries that turn a vendor brownout into your own outage",
			"Testing only against the happy-path sandbox responses",
		},
		Example: "A payment integration wraps the provider in a Charger interface with a 10 second " +
			"timeout and idempotency keys. When the provider has a bad hour, callers see fast " +
			"failures and one duplicate-safe retry, not hung requests.",
	},
	{
		Slug:    "state-management",
		Name:    "State Management",
		Summary: "One source of truth per fact, explicit ownership, and derived state recomputed rather than stored.",
		Definition: "Bugs breed where the same fact lives in two places. Sound state management names " +
			"one owner for each piece of state, routes all mutations through that owner, and treats " +
			"everything else as a derived view that can be recomputed or invalidated, never edited " +
			"directly.",
		WhenToUse: []string{
			"The same value is updated from several code paths and drifts out of sync",
			"Caches, denormalized columns, or UI copies of server state disagree after edge cases",
			"Concurrency is involved and shared mutable state needs a defensible story",
		},
		Steps: []string{
			"Inventory the state: what facts exist and where is each one written",
			"Pick one source of truth per fact and make every other copy officially derived",
			"Route all mutations through the owner so invariants live in one place",
			"Give every derived copy an invalidation or recomputation rule",
			"Under concurrency, guard the owner with a lock or confine it to one goroutine",
		},
		Pitfalls: []string{
			"Hidden second writers: a migration script or admin endpoint that edits a derived copy directly",
			"Caching before measuring; every cache is a second copy you now have to keep honest",
		},
		Example: "A batch collector keeps pending events in exactly one slice guarded by a mutex. " +
			"Counters for reporting are atomics derived from the operations, so readers never touch " +
			"the slice and the invariant has one home.",
	},
	{
		Slug:    "async-processing",
		Name:    "Asynchronous Processing",
		Summary: "Decouple producing work from doing it with queues, workers, and idempotent consumers.",
		Definition: "Move work that need not complete inside the request onto a queue consumed by " +
			"background workers. The producer gains latency and availability; the price is " +
			"at-least-once delivery, reordering, and the need for idempotent consumers and explicit " +
			"failure handling.",
		WhenToUse: []string{
			"Work is slower than the caller is willing to wait (email, exports, media processing)",
			"Load is spiky and you want to absorb bursts instead of scaling for the peak",
			"A non-critical side effect should never block or fail the main operation",
		},
		Steps: []string{
			"Split the operation into the part the caller must see and the part that can happen later",
			"Enqueue the later part as a self-contained message with everything the worker needs",
			"Make the worker idempotent so redelivery is harmless",
			"Decide the failure policy: retry with backoff, dead-letter, or drop, and make it explicit",
			"Bound the queue and define behavior when full; unbounded queues just move the outage",
		},
		Pitfalls: []string{
			"Assuming exactly-once delivery; design for duplicates from day one",
			"Silent drop-on-full without a counter, which hides data loss until someone reconciles",
			"Workers that need the producer's in-memory context, which a queue cannot carry",
		},
		Example: "Usage events are appended to an in-memory batch and flushed by a background " +
			"goroutine on size or interval. A failed flush pushes events back for the next attempt, " +
			"and a bounded async queue drops and counts rather than blocking the caller.",
	},
	{
		Slug:    "scalability",
		Name:    "Scalability",
		Summary: "Design so capacity grows by adding instances, not by heroics: stateless services, partitioned data, measured bottlenecks.",
		Definition: "A scalable design is one where the next order of magnitude of load has a known, " +
			"mostly mechanical answer. The usual ingredients are stateless request paths that scale " +
			"horizontally, data partitioned so no single node must see everything, caches for the " +
			"read-heavy head, and continuous measurement to find the next bottleneck before it finds " +
			"you.",
		WhenToUse: []string{
			"Load is growing and the current design has a known ceiling",
			"A single stateful component (database, coordinator, in-memory session store) is the choke point",
			"Deciding early architecture for a system with plausible 100x growth",
		},
		Steps: []string{
			"Measure where time and capacity actually go under realistic load",
			"Make request handlers stateless; move session and shared state to a store built for it",
			"Partition the hot data by a key that spreads load and keeps related data together",
			"Cache the read-heavy head with explicit invalidation",
			"Re-measure; the bottleneck has moved, repeat",
		},
		Pitfalls: []string{
			"Scaling for imagined load while real users wait for features; measure before distributing",
			"Distributed complexity as a status symbol; a bigger box is often the right first answer",
			"Partition keys chosen by convenience that put all hot traffic on one shard",
		},
		Example: "An API layer goes stateless by moving sessions to a shared store, then scales from " +
			"2 to 20 replicas behind the balancer without code changes. The next measured bottleneck " +
			"is the database, which gets a read replica, not a rewrite.",
	},
	{
		Slug:    "security",
		Name:    "Security by Design",
		Summary: "Least privilege, validated boundaries, and layered defenses designed in, not bolted on.",
		Definition: "Security as a property of the design: every component gets the minimum authority " +
			"it needs, every input is validated where it crosses a trust boundary, secrets live in " +
			"managed stores rather than code, and no single defense is load-bearing. Failures should " +
			"be safe-by-default: deny on doubt.",
		WhenToUse: []string{
			"Any feature that touches user data, authentication, or money",
			"Reviewing a design where one component can read or write far more than it needs",
			"After an audit finding; fixes should move the boundary, not just patch the instance",
		},
		Steps: []string{
			"Draw the trust boundaries: where does data or control enter from a less-trusted zone",
			"Validate and normalize at each boundary, in one owned place per boundary",
			"Grant each component least privilege and make the grants reviewable",
			"Keep secrets out of code and logs; inject them from a managed store",
			"Decide the failure direction for every check: deny on error, and log enough to audit",
		},
		Pitfalls: []string{
			"Validating in the UI only; every server endpoint is its own boundary",
			"A hard shell with a soft inside: one SSRF or leaked credential away from everything",
			"Logging the sensitive values you worked so hard to protect",
		},
		Example: "A local analytics store keeps only tool names, durations, and outcomes, never " +
			"arguments or user content. The most sensitive thing the file can leak is that a tool " +
			"was used, because nothing more was ever collected.",
	},
	{
		Slug:    "agentic-design",
		Name:    "Agentic Design",
		Summary: "Structure LLM agents as bounded loops over explicit tools with verification between steps.",
		Definition: "An agentic system gives a language model a fixed vocabulary of typed tools, a " +
			"goal, and a loop: decide, act through a tool, observe the result, repeat. Good designs " +
			"bound the loop, validate tool arguments as hostile input, keep side effects behind " +
			"explicit tools, and verify outcomes instead of trusting the model's narration.",
		WhenToUse: []string{
			"Automating multi-step tasks where the steps cannot be fully enumerated in advance",
			"Exposing a system to LLM callers through a tool protocol",
			"A single-shot prompt is not reliable enough and needs observation between steps",
		},
		Steps: []string{
			"Define the tool surface: small, typed, hard to misuse, each tool one capability",
			"Validate every tool argument server-side; the model is an untrusted caller",
			"Bound the loop with step, token, and time budgets, and a clear stop condition",
			"After each consequential action, verify the outcome independently of the model's claim",
			"Log every tool call with its outcome so failed runs can be replayed and diagnosed",
		},
		Pitfalls: []string{
			"Broad tools (run any shell command) that make the security boundary the model's judgment",
			"Unbounded loops that burn budget re-trying the same failing action",
			"Trusting the transcript: the model saying it did something is not evidence that it did",
		},
		Example: "A documentation server exposes six typed MCP tools with enum-constrained " +
			"arguments. The serving process validates every argument, returns structured errors the " +
			"model can react to, and its telemetry records outcomes per tool, making the agent loop " +
			"observable.",
	},
	{
		Slug:    "event-sourcing",
		Name:    "Event Sourcing",
		Summary: "Store the append-only history of what happened; derive current state by replay.",
		Definition: "Instead of persisting the latest state and losing how it got there, persist the " +
			"full sequence of domain events as the source of truth. Current state is a fold over the " +
			"log; new read models can be projected from history at any time; the log itself is the " +
			"audit trail.",
		WhenToUse: []string{
			"The history is a requirement: audit, compliance, undo, or time-travel debugging",
			"Several read models need different shapes of the same underlying facts",
			"Conflict resolution or reconciliation needs to know the order of what happened",
		},
		Steps: []string{
			"Model state changes as named, immutable, past-tense events with their own timestamps",
			"Append events to durable ordered storage; never update or delete written history",
			"Build projections that fold events into the read models each consumer needs",
			"Version the event schema from day one so old events remain readable",
			"Add snapshots or partitioning when replay from the beginning gets slow",
		},
		Pitfalls: []string{
			"Events that record intent (UserClickedSave) instead of fact (ProfileUpdated)",
			"Treating the log as editable when a bug writes bad events; correct with compensating events",
			"Unbounded logs with no retention or snapshot plan",
		},
		Example: "Usage telemetry appends immutable events into daily partition files named by the " +
			"event's own date. Usage reports, error rates, and trends are all projections over the " +
			"same log, and retention is enforced by deleting whole expired partitions.",
	},
}
