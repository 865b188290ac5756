package catalog

var mentalModels = []Entry{
	{
		Slug:    "first-principles",
		Name:    "First Principles Thinking",
		Summary: "Strip a problem down to what is certainly true and rebuild the solution from there.",
		Definition: "Decompose the problem into its fundamental facts, the things that would stay true " +
			"even if every existing solution disappeared, and reason upward from those instead of " +
			"reasoning by analogy to how it is usually done.",
		WhenToUse: []string{
			"The conventional approach is expensive or keeps failing and nobody remembers why it is conventional",
			"You inherited constraints and suspect some of them are historical rather than real",
			"Estimating what is physically or logically possible, not just what existing tools offer",
		},
		Steps: []string{
			"Write down every assumption baked into the current approach",
			"Challenge each one: is it a law, a measurement, or just a habit?",
			"Keep only the assumptions that survive as ground truths",
			"Rebuild the solution using the ground truths alone",
			"Compare the rebuilt solution against the conventional one and keep the better parts of each",
		},
		Pitfalls: []string{
			"Re-deriving everything from scratch when the conventional answer was fine; the model is for stuck problems, not every problem",
			"Mistaking a strongly held opinion for a ground truth",
		},
		Example: "A team assumes their sync must go through a message broker because it always has. " +
			"Reduced to first principles, the real requirements are ordering and at-least-once delivery " +
			"between two services they own, which a simple outbox table satisfies at a tenth of the " +
			"operational cost.",
	},
	{
		Slug:    "opportunity-cost",
		Name:    "Opportunity Cost",
		Summary: "The real price of a choice is the best alternative you give up by making it.",
		Definition: "Every hour, dollar, or byte spent on one option is unavailable to the next-best " +
			"option. Evaluating a decision means comparing it against the alternative it displaces, " +
			"not against doing nothing.",
		WhenToUse: []string{
			"Prioritizing a roadmap or a sprint where everything looks individually worthwhile",
			"Deciding whether to build, buy, or defer",
			"A refactor, migration, or rewrite competes with feature work for the same people",
		},
		Steps: []string{
			"Name the option under consideration and its expected payoff",
			"Name the best alternative use of the same time and people",
			"Estimate both payoffs in the same unit, however roughly",
			"Choose the larger one; the difference is what the decision actually costs",
		},
		Pitfalls: []string{
			"Comparing against zero instead of against the displaced alternative",
			"Counting sunk costs as if they were still spendable",
			"False precision: rough comparable estimates beat exact incomparable ones",
		},
		Example: "Two weeks spent hand-tuning a custom cache is two weeks not spent adding the read " +
			"replica that would make the cache unnecessary. The cache is not free even if no money " +
			"changes hands.",
	},
	{
		Slug:    "error-propagation",
		Name:    "Error Propagation",
		Summary: "Small faults grow as they cross boundaries; judge a change by how far its failure can travel.",
		Definition: "Errors rarely stay where they are born. A bad value, a stale cache, or a skipped " +
			"validation compounds as downstream components build on it. Thinking in propagation terms " +
			"means tracing where a fault can flow and where it gets amplified, absorbed, or detected.",
		WhenToUse: []string{
			"Designing interfaces between components, teams, or services",
			"Deciding where to put validation, retries, and circuit breakers",
			"A post-incident review where the visible failure was far from the root cause",
		},
		Steps: []string{
			"Pick a fault and mark where it enters the system",
			"Follow each consumer of the faulty output and ask whether it detects, absorbs, or amplifies the fault",
			"Find the first boundary where detection is cheap and make the check explicit there",
			"Make the remaining propagation paths visible in logs so the trail exists when it happens",
		},
		Pitfalls: []string{
			"Validating the same thing at every layer instead of clearly owning it at one boundary",
			"Assuming a retry fixes a propagated error when it just replays it",
		},
		Example: "A timestamp recorded in local time instead of UTC is off by two hours. Reports " +
			"aggregate it into the wrong day, the retention job deletes the wrong partition, and the " +
			"audit trail disagrees with the data. One conversion at the write boundary would have " +
			"stopped all three.",
	},
	{
		Slug:    "rubber-duck",
		Name:    "Rubber Duck Articulation",
		Summary: "Explain the problem out loud, step by step, to force hidden gaps into view.",
		Definition: "Articulating a problem to an imagined listener makes you serialize your mental " +
			"model. The act of putting each step into words surfaces the step you skipped, the " +
			"assumption you never checked, or the term you cannot actually define.",
		WhenToUse: []string{
			"You are stuck and have been re-reading the same code or notes without progress",
			"Before interrupting a colleague; the explanation alone often resolves it",
			"Writing a design doc or bug report and the summary refuses to come out clean",
		},
		Steps: []string{
			"State what the system should do in one sentence",
			"Walk through what actually happens, one concrete step at a time, out loud or in writing",
			"Each time you say 'obviously' or 'somehow', stop and verify that step",
			"The step you cannot explain precisely is where to dig",
		},
		Pitfalls: []string{
			"Summarizing instead of stepping; the gaps hide inside the summaries",
			"Explaining the solution you want instead of the behavior you observe",
		},
		Example: "Halfway through explaining why a flush 'cannot possibly run twice', you hear " +
			"yourself say 'because the timer is stopped by then', and realize nothing stops the timer.",
	},
	{
		Slug:    "pareto-principle",
		Name:    "Pareto Principle",
		Summary: "Most of the effect comes from a small share of the causes; find that share first.",
		Definition: "In most real distributions, roughly 80% of the outcome traces to roughly 20% of " +
			"the inputs: a few endpoints produce most of the load, a few modules most of the bugs, a " +
			"few customers most of the revenue. Effort aimed at the heavy fraction pays off " +
			"disproportionately.",
		WhenToUse: []string{
			"Performance work: profile first, optimize the top of the profile only",
			"Triaging a large bug backlog or flaky test suite",
			"Deciding which code paths deserve the most review and test attention",
		},
		Steps: []string{
			"Measure the distribution instead of assuming it; get real counts per cause",
			"Rank causes by contribution and find the knee of the curve",
			"Fix the head of the distribution first and re-measure",
			"Stop when the remaining tail costs more to fix than it causes",
		},
		Pitfalls: []string{
			"Applying the ratio without measuring; some distributions are flat",
			"Ignoring the tail forever even when a tail item is a correctness or safety issue",
		},
		Example: "Profiling shows one JSON re-encode inside a loop accounts for 70% of request " +
			"latency. Fixing that one call site beats a month of micro-optimizations spread across " +
			"the codebase.",
	},
	{
		Slug:    "occams-razor",
		Name:    "Occam's Razor",
		Summary: "Prefer the explanation that needs the fewest assumptions, and test it first.",
		Definition: "When several explanations fit the evidence, the one requiring the fewest new " +
			"assumptions is most likely correct, and it is almost always the cheapest to test. The " +
			"razor orders hypotheses for testing; it does not prove anything by itself.",
		WhenToUse: []string{
			"A bug that looks like it needs a compiler bug, cosmic ray, or race in a library to explain",
			"Choosing between a simple and an elaborate design that both satisfy the requirements",
			"Incident triage under time pressure: check config and recent deploys before exotic theories",
		},
		Steps: []string{
			"List the candidate explanations for the observed behavior",
			"Count what each one requires you to believe that you have not verified",
			"Test the explanation with the fewest unverified assumptions first",
			"Only escalate to exotic explanations after the mundane ones are ruled out by evidence",
		},
		Pitfalls: []string{
			"Treating 'simplest' as 'the one I can fix fastest' rather than 'fewest assumptions'",
			"Clinging to the simple explanation after evidence has eliminated it",
		},
		Example: "The service returns stale data after a deploy. Before suspecting a cache coherency " +
			"bug in the driver, check whether the deploy restarted both replicas. It restarted one.",
	},
	{
		Slug:    "inversion",
		Name:    "Inversion",
		Summary: "Instead of asking how to succeed, ask what would guarantee failure, and avoid it.",
		Definition: "Many problems are clearer backwards. Rather than optimizing for the desired " +
			"outcome directly, enumerate the conditions that would make the outcome impossible and " +
			"design them out. Avoiding stupidity is often more tractable than manufacturing " +
			"brilliance.",
		WhenToUse: []string{
			"Designing for reliability: plan the outage post-mortem before the launch",
			"Requirements feel vague but failure modes are concrete",
			"Reviewing a plan that everyone already likes and nobody is challenging",
		},
		Steps: []string{
			"State the goal, then write its negation as a concrete scenario",
			"Brainstorm everything that would reliably produce the negation",
			"Rank those failure producers by likelihood and damage",
			"Add a guard, test, or process change for each of the top ones",
		},
		Pitfalls: []string{
			"Stopping at the list of failure modes without designing any of them out",
			"Only inverting technical risks and ignoring process and people failure modes",
		},
		Example: "Goal: users trust the telemetry system. Inverted: what would destroy trust " +
			"instantly? Collecting without asking, making deletion hard, and hiding what is stored. " +
			"Those three become consent gating, a one-command wipe, and an export command.",
	},
	{
		Slug:    "second-order",
		Name:    "Second-Order Thinking",
		Summary: "Follow the consequences one step past the immediate result: and then what?",
		Definition: "First-order thinking stops at the direct effect of an action. Second-order " +
			"thinking asks what the direct effect causes in turn, especially how people and systems " +
			"adapt to the change. Most unintended consequences live at the second order.",
		WhenToUse: []string{
			"Introducing incentives, quotas, limits, or metrics that people will adapt to",
			"API or schema changes whose consumers will build on the new behavior",
			"Capacity and scaling decisions where relieving one bottleneck moves the load to the next",
		},
		Steps: []string{
			"Write the immediate effect of the decision",
			"For each affected party, ask how they change their behavior in response",
			"Repeat once more for the adapted behavior",
			"Decide with the full chain in view, and note which links to monitor after shipping",
		},
		Pitfalls: []string{
			"Analysis paralysis from chasing fifth-order effects; two steps cover most of the value",
			"Assuming adaptation is malicious; most second-order effects come from people responding sensibly",
		},
		Example: "Raising the request rate limit fixes the immediate complaints. Second order: " +
			"clients stop batching, traffic triples, and the database becomes the new bottleneck " +
			"under a load shape the limit used to prevent.",
	},
}
