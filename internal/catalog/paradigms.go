package catalog

var paradigms = []Entry{
	{
		Slug:    "imperative",
		Name:    "Imperative Programming",
		Summary: "Describe computation as explicit statements that change program state step by step.",
		Definition: "The program is a sequence of commands: assign, branch, loop, call. State is " +
			"mutable and time matters; the meaning of the program is the order in which its " +
			"statements execute. It maps directly onto how hardware works, which makes costs " +
			"visible and control precise.",
		WhenToUse: []string{
			"Performance-critical code where memory layout and operation order must be controlled",
			"Algorithms naturally stated as ordered steps over mutable structures",
			"Small scripts and glue code where ceremony would outweigh the logic",
		},
		Steps: []string{
			"State the algorithm as ordered steps before writing code",
			"Keep mutable state local to the smallest possible scope",
			"Make loop invariants explicit, at least in a comment",
			"Extract repeated statement sequences into procedures as they appear",
		},
		Pitfalls: []string{
			"Mutable state shared across distant code, where any line can invalidate any assumption",
			"Deeply nested control flow standing in for missing abstractions",
		},
		Example: "An in-place partition step of quicksort: two indexes walking toward each other, " +
			"swapping elements, order of operations essential. No other style states it as directly.",
	},
	{
		Slug:    "procedural",
		Name:    "Procedural Programming",
		Summary: "Organize imperative code into procedures with parameters, local state, and clear call contracts.",
		Definition: "A discipline over imperative code: decompose the program into procedures that " +
			"take parameters, keep their own local state, and communicate through explicit inputs " +
			"and outputs rather than shared globals. The procedure boundary is the unit of reuse, " +
			"testing, and reasoning.",
		WhenToUse: []string{
			"An imperative codebase growing past the point where one long main is readable",
			"Shared globals are causing action-at-a-distance bugs",
			"CLIs, build tooling, and data pipelines with a clear top-down flow",
		},
		Steps: []string{
			"Split the program along its natural phases into procedures",
			"Pass data as parameters and return values; demote globals to locals",
			"Give each procedure one job and a name that states it",
			"Group related procedures and their types into modules with a small public surface",
		},
		Pitfalls: []string{
			"Procedures that communicate through globals anyway, keeping the coupling and adding indirection",
			"Flag parameters that switch one procedure between unrelated behaviors",
		},
		Example: "A backup tool structured as collectFiles, compress, encrypt, upload, each testable " +
			"alone with plain inputs and outputs, composed by a ten-line main.",
	},
	{
		Slug:    "object-oriented",
		Name:    "Object-Oriented Programming",
		Summary: "Bundle state with the operations that maintain its invariants, behind an interface.",
		Definition: "Objects pair data with the methods allowed to touch it, so an invariant has one " +
			"enclosure. Callers program against interfaces; implementations vary behind them " +
			"(polymorphism). Composition assembles behavior from parts; inheritance shares it " +
			"top-down and is the sharpest tool in the drawer.",
		WhenToUse: []string{
			"State with invariants that must hold across every mutation",
			"Several interchangeable implementations of one contract (stores, codecs, transports)",
			"Long-lived domain entities whose identity outlasts any one value of their fields",
		},
		Steps: []string{
			"Find the invariants; each becomes a type that encapsulates the state it governs",
			"Expose intent-named methods and hide the fields they protect",
			"Define interfaces where callers need to vary the implementation, sized by the caller's needs",
			"Prefer composition; reach for inheritance only for a genuine is-a with stable contracts",
		},
		Pitfalls: []string{
			"Anemic objects: getters and setters around bare data, invariants enforced nowhere",
			"Deep inheritance trees where understanding one method means reading five ancestors",
		},
		Example: "A ConsentGate owns the consent record and its cache; the only ways in are Grant, " +
			"Withdraw, and Granted, so the fail-safe rule 'no readable record means no consent' " +
			"lives in exactly one place.",
	},
	{
		Slug:    "functional",
		Name:    "Functional Programming",
		Summary: "Build programs from pure functions over immutable values; push effects to the edges.",
		Definition: "Functions map inputs to outputs with no observable side effects, and data is " +
			"immutable: transformation produces new values instead of editing old ones. Programs " +
			"compose small functions into pipelines. Effects still happen, but at the boundary, " +
			"leaving a pure core that is trivial to test and safe to parallelize.",
		WhenToUse: []string{
			"Data transformation pipelines: parse, normalize, aggregate, render",
			"Logic that must be easy to test exhaustively with plain values",
			"Concurrent code, since immutable data needs no locks",
		},
		Steps: []string{
			"Separate the computation from the effects around it",
			"Write the computation as pure functions from value to value",
			"Compose the pipeline; confine mutation to function-local scratch space",
			"Keep I/O, clocks, and randomness at the edge, injected, so the core stays deterministic",
		},
		Pitfalls: []string{
			"Hidden effects in a nominally pure function (logging, clock reads) that spoil referential transparency",
			"Copy cost ignorance on large values in hot paths; measure and localize mutation deliberately",
		},
		Example: "A reporting path reads events once, then flows through pure functions: filter by " +
			"window, group by day, compute rates, compare half-means for a trend. Every stage is a " +
			"table test with literal slices.",
	},
	{
		Slug:    "declarative",
		Name:    "Declarative Programming",
		Summary: "State what result you want and let an engine derive how to produce it.",
		Definition: "The program specifies the desired outcome: the shape of the data, the layout of " +
			"infrastructure, the rows to select, and an engine (query planner, solver, reconciler) " +
			"figures out the steps. You trade step-level control for concision and for optimizations " +
			"the engine can make across the whole specification.",
		WhenToUse: []string{
			"The domain has a mature engine: SQL, regex, build graphs, infrastructure reconciliation",
			"Specifications change often and hand-written procedures keep lagging behind",
			"The desired state is easy to state and hard to sequence by hand",
		},
		Steps: []string{
			"Express the desired result in the domain's specification language",
			"Let the engine execute, and verify the result rather than the steps",
			"When performance disappoints, inspect the engine's plan before abandoning the approach",
			"Keep escape hatches for the rare case the engine cannot express",
		},
		Pitfalls: []string{
			"Treating the engine as magic until the first pathological plan; learn to read its output",
			"Forcing a procedural problem into a declarative shape with ever-stranger specifications",
		},
		Example: "A retention rule stated as 'keep 30 days' with a scheduler expression '@daily' " +
			"replaces a hand-rolled timer loop; the cron engine owns when, the rule owns what.",
	},
	{
		Slug:    "reactive",
		Name:    "Reactive Programming",
		Summary: "Model the program as streams of events and derived values that update when sources change.",
		Definition: "Values are defined in terms of other values and the runtime propagates changes: " +
			"when a source emits, everything derived from it recomputes. Programs become graphs of " +
			"streams with operators (map, filter, debounce, merge) instead of callback webs and " +
			"manual cache invalidation.",
		WhenToUse: []string{
			"User interfaces where many views derive from shared changing state",
			"Event streams needing composition: throttle, window, join, replay",
			"Push-based data (tickers, sensors, subscriptions) consumed by multiple dependents",
		},
		Steps: []string{
			"Identify the sources: the streams of events or changing values entering the system",
			"Express every derived value as a declared transformation over its inputs",
			"Handle lifecycle explicitly: subscription, error propagation, completion, and backpressure",
			"Keep side effects in clearly marked terminal subscribers, not inside operators",
		},
		Pitfalls: []string{
			"Leaked subscriptions that keep dead components updating forever",
			"Backpressure ignored until a fast producer floods a slow consumer in production",
			"Debugging difficulty: stack traces show the runtime, not your data flow; invest in stream tracing",
		},
		Example: "A dashboard derives 'error rate per tool' from an event stream by windowing over " +
			"the last hour and recomputing on each event, rather than polling a table and diffing " +
			"by hand.",
	},
	{
		Slug:    "concurrent",
		Name:    "Concurrent Programming",
		Summary: "Structure the program as independent activities that coordinate explicitly, by message or by lock.",
		Definition: "Concurrency is structuring a program as multiple activities in flight at once, " +
			"whether or not they run in parallel. Correctness comes from the coordination story: " +
			"confine each piece of mutable state to one activity, pass data by communication, or " +
			"guard shared state with locks held briefly and consistently.",
		WhenToUse: []string{
			"Work dominated by waiting (network, disk) that can overlap",
			"Throughput needs more than one CPU",
			"Naturally concurrent domains: servers per-request, pipelines per-stage, background jobs",
		},
		Steps: []string{
			"Name the activities and what each one owns",
			"Choose the coordination per shared fact: confinement, channels, or a mutex, and write it down",
			"Bound every queue and every wait with a timeout, capacity, or cancellation",
			"Design shutdown first: who stops whom, in what order, and who drains what",
			"Run the race detector in tests from the start",
		},
		Pitfalls: []string{
			"Data visible to two goroutines with no declared owner, the root of most races",
			"Locks held across I/O or callbacks, inviting deadlock",
			"Goroutines with no exit path, leaking until the process dies",
		},
		Example: "An event collector confines its batch behind one mutex, receives async events on " +
			"a bounded channel, and its shutdown path closes the intake, drains the channel, and " +
			"flushes once, in that order.",
	},
	{
		Slug:    "actor-model",
		Name:    "Actor Model",
		Summary: "Isolate state inside actors that interact only through asynchronous messages.",
		Definition: "An actor is a unit of state plus a mailbox plus behavior: it processes one " +
			"message at a time, so its state needs no locks. Actors create other actors, send " +
			"messages, and supervise children, restarting them on failure. Errors are contained and " +
			"handled by supervisors instead of unwinding the whole program.",
		WhenToUse: []string{
			"Many independent stateful entities: sessions, devices, game entities, orders",
			"Fault isolation matters: one entity crashing must not take the rest down",
			"Distribution is plausible later, since message passing already assumes a boundary",
		},
		Steps: []string{
			"Model each independently consistent entity as an actor owning its own state",
			"Define the message protocol per actor; messages are immutable data",
			"Arrange supervision: who restarts whom, and with how much restored state",
			"Make message handling idempotent where redelivery is possible",
			"Watch mailbox depths; a growing mailbox is the actor-world backpressure alarm",
		},
		Pitfalls: []string{
			"Request-response chains between many actors recreating a distributed call stack",
			"Unbounded mailboxes hiding overload until memory runs out",
			"Sharing a mutable structure inside a message, silently breaking the isolation guarantee",
		},
		Example: "Each connected device gets an actor owning its session state. A malformed packet " +
			"crashes that one actor; its supervisor restarts it from the last checkpoint while ten " +
			"thousand siblings never notice.",
	},
}
