package catalog

var debuggingApproaches = []Entry{
	{
		Slug:    "binary-search",
		Name:    "Binary Search Debugging",
		Summary: "Halve the suspect space with each probe until the fault has nowhere left to hide.",
		Definition: "Treat the bug hunt as a search problem over an ordered space: commits in " +
			"history, stages in a pipeline, lines in a config, records in an input file. Probe the " +
			"midpoint, decide which half contains the fault, discard the other half, repeat. " +
			"Twenty probes cover a million candidates.",
		WhenToUse: []string{
			"A regression appeared somewhere in a long range of commits (git bisect)",
			"A large input crashes the program and you need the minimal failing piece",
			"A long pipeline produces bad output and any stage could be the culprit",
		},
		Steps: []string{
			"Define a cheap, reliable test that says good or bad for any point in the space",
			"Confirm the endpoints: the start is good, the end is bad",
			"Probe the midpoint and keep the half where good turns to bad",
			"Repeat until one candidate remains, then understand it before fixing it",
		},
		Pitfalls: []string{
			"A flaky test oracle, which sends the search into the wrong half and wastes every later probe",
			"Spaces that are not monotonic (the bug appears and disappears); bisection needs one transition",
		},
		Example: "A nightly job started failing within a 200-commit window. Eight bisect steps with " +
			"a two-minute repro script land on a one-line dependency bump nobody suspected.",
	},
	{
		Slug:    "reverse-engineering",
		Name:    "Reverse Engineering",
		Summary: "Work backwards from observed behavior to structure when the source, docs, or authors are gone.",
		Definition: "When the system is a black box, its behavior is still evidence. Feed it " +
			"controlled inputs, observe outputs and side effects, and build a model of its internals " +
			"hypothesis by hypothesis, confirming each one with an experiment before relying on it.",
		WhenToUse: []string{
			"Integrating with an undocumented API, file format, or wire protocol",
			"Maintaining inherited code whose authors and documentation are gone",
			"Verifying what a dependency actually does versus what its docs claim",
		},
		Steps: []string{
			"Gather the observable surface: inputs, outputs, files touched, traffic, logs",
			"Vary one input at a time and record what changes",
			"Form a model of the internal rule and write it down",
			"Design the experiment that would break your model if it is wrong, and run it",
			"Capture the confirmed model as tests or docs so the next person starts from evidence",
		},
		Pitfalls: []string{
			"Trusting the first model that fits three observations; seek the disconfirming case",
			"Depending on reverse-engineered incidental behavior that the vendor never promised",
		},
		Example: "An undocumented export format yields to an afternoon of crafted inputs: field 3 " +
			"is little-endian seconds since 2001, not 1970, which one diff between two exports a " +
			"minute apart makes obvious.",
	},
	{
		Slug:    "divide-and-conquer",
		Name:    "Divide and Conquer",
		Summary: "Split the system at its seams and verify each part alone until the broken part is cornered.",
		Definition: "Cut the failing path at a natural boundary, verify each side independently with " +
			"controlled inputs, and recurse into the side that fails. Unlike binary search over an " +
			"ordered space, this works on structure: components, layers, and interfaces.",
		WhenToUse: []string{
			"A multi-component failure where every team says their part is fine",
			"The fault could be in your code, a library, the network, or the environment",
			"An integration works in one environment and fails in another",
		},
		Steps: []string{
			"Draw the path of the failing operation through the system's components",
			"Pick the cleanest seam and capture the data crossing it",
			"Replay the captured input to the downstream side alone; verify the upstream side's output alone",
			"Recurse into whichever side misbehaves",
			"When a single component remains, debug it with full attention, not divided suspicion",
		},
		Pitfalls: []string{
			"Cutting at convenient rather than meaningful seams, proving nothing about either side",
			"Mocks that are kinder than the real neighbor, making the broken side pass in isolation",
		},
		Example: "Bad totals in a report: replaying the exporter's own output through the " +
			"aggregator alone produces correct totals, so the exporter is clean and the fault is in " +
			"the loader everyone had already vouched for.",
	},
	{
		Slug:    "backtracking",
		Name:    "Backtracking",
		Summary: "Walk backwards from the failure point through causes until you reach the first wrong fact.",
		Definition: "Start where the failure is visible and ask what directly produced that state; " +
			"then what produced that, link by link. Each hop is verified with evidence (logs, " +
			"breakpoints, stored data), never assumed. The chain ends at the earliest wrong fact, " +
			"which is the thing to fix; everything downstream was just faithfully propagating it.",
		WhenToUse: []string{
			"A crash or corruption whose site is obviously not its source",
			"Intermittent failures where only the wreckage is available afterwards",
			"Understanding an unfamiliar codebase through one concrete failure",
		},
		Steps: []string{
			"Pin the failure precisely: exact value, exact place, exact time",
			"Find the immediate producer of that wrong value and verify it really produced it",
			"Step back again from that producer's inputs; keep a written chain of verified links",
			"Stop at the first fact that is wrong with correct inputs; that is the root",
			"Fix the root, then decide which downstream links deserve their own guard",
		},
		Pitfalls: []string{
			"Fixing a mid-chain symptom, which cures this trace and leaves the root for next week",
			"Guessing a link instead of verifying it; one assumed hop can send the whole hunt sideways",
		},
		Example: "A nil pointer in rendering traces back four hops to a parser that returns a " +
			"half-built struct on a malformed header instead of an error. Every function in between " +
			"handled its input correctly.",
	},
	{
		Slug:    "cause-elimination",
		Name:    "Cause Elimination",
		Summary: "List every plausible cause, then design observations that eliminate them one by one.",
		Definition: "Enumerate the hypotheses that could explain the symptom, then attack the list " +
			"with experiments, ordering by cheapness of the test and prior likelihood. Each " +
			"experiment is designed to eliminate, not to confirm: whatever survives honest attempts " +
			"at elimination is treated as the cause.",
		WhenToUse: []string{
			"Several rival explanations fit the evidence and debugging keeps circling",
			"Team discussions loop over the same theories without resolution",
			"Non-reproducible production issues where each experiment is expensive",
		},
		Steps: []string{
			"Write down every cause anyone can propose, without filtering",
			"For each, note what evidence would rule it out",
			"Order by test cheapness times prior likelihood, cheap and likely first",
			"Run the eliminations, recording each verdict next to its hypothesis",
			"Confirm the survivor with a positive prediction before declaring victory",
		},
		Pitfalls: []string{
			"Experiments designed to confirm a favorite theory instead of to eliminate it",
			"An incomplete initial list; revisit it when every hypothesis dies",
			"Eliminating on weak evidence, which silently discards the true cause",
		},
		Example: "Five theories for intermittent timeouts go on the whiteboard. DNS dies to a " +
			"ten-minute log query, GC to heap profiles, and the survivor, connection pool " +
			"exhaustion, correctly predicts that timeouts begin exactly at the pool cap.",
	},
	{
		Slug:    "program-slicing",
		Name:    "Program Slicing",
		Summary: "Reduce the code under suspicion to only the statements that can influence the bad value.",
		Definition: "For a wrong value at a point in the program, the slice is the subset of " +
			"statements that could have affected it, computed by following data and control " +
			"dependencies backwards. Everything outside the slice is provably irrelevant and can be " +
			"ignored, shrinking thousands of lines to dozens.",
		WhenToUse: []string{
			"One specific variable holds the wrong value at one specific point",
			"The codebase is too large to read and suspicion must be narrowed mechanically",
			"Preparing a minimal reproduction for a bug report",
		},
		Steps: []string{
			"Fix the criterion: which variable, at which line, is wrong",
			"Trace its direct producers: every assignment and input that reaches it",
			"Add the control flow that decides whether those producers run",
			"Repeat transitively until the slice closes under both dependencies",
			"Debug inside the slice only; resist detours into code outside it",
		},
		Pitfalls: []string{
			"Missing hidden data flows through globals, closures, or I/O, which silently truncate the slice",
			"In concurrent code, writes from other goroutines are producers too",
		},
		Example: "A wrong cutoff date in a cleanup run slices to eleven lines: the clock read, one " +
			"subtraction, a format call, and the comparisons, and the bug is an off-by-one sitting " +
			"in the subtraction, found in minutes.",
	},
	{
		Slug:    "differential-debugging",
		Name:    "Differential Debugging",
		Summary: "Take a working and a failing case and shrink the difference between them until only the cause remains.",
		Definition: "When something works here and fails there, the bug lives in the difference. " +
			"Enumerate everything that differs (version, config, data, environment, timing), then " +
			"transplant differences one at a time across the cases until the failure follows one of " +
			"them. That difference contains the cause.",
		WhenToUse: []string{
			"Works on my machine, fails in CI or production",
			"One tenant, record, or request fails while thousands of near-identical ones succeed",
			"A regression between two versions with too many changes to read",
		},
		Steps: []string{
			"Pin both cases so they are individually reproducible",
			"List every axis of difference you can observe or dump",
			"Equalize the cheapest axis first and re-test; keep halving where the axes allow",
			"When the failure moves with one difference, dig into that axis alone",
			"Verify by flipping the difference both ways: it should break the good case and fix the bad one",
		},
		Pitfalls: []string{
			"Changing several axes per iteration, which destroys the inference",
			"Hidden axes (locale, clock, filesystem case sensitivity) missing from the list",
			"Two interacting differences, which single-axis flips will implicate only together",
		},
		Example: "A parser fails only in CI. Equalizing OS, versions, and flags changes nothing; " +
			"copying the CI checkout locally reproduces it. The axis is the data: git on CI checked " +
			"out with CRLF line endings.",
	},
	{
		Slug:    "rubber-duck-debugging",
		Name:    "Rubber Duck Debugging",
		Summary: "Narrate the code line by line to an imagined listener until intent and text stop matching.",
		Definition: "Explain what the code does, statement by statement, to a listener who knows " +
			"nothing, a duck will do. The discipline of saying what each line actually does, rather " +
			"than what it is supposed to do, surfaces the line where the two diverge. The bug is " +
			"usually within arm's reach of that line.",
		WhenToUse: []string{
			"You have stared at the same function for twenty minutes and it still looks correct",
			"Before asking for help; the question's preamble often answers it",
			"Reviewing your own change before sending it",
		},
		Steps: []string{
			"State aloud what the function is supposed to achieve",
			"Read each line and say what it literally does, not what it means",
			"At every condition and loop, say which way it goes for the failing input and why",
			"When a sentence comes out wrong, surprised, or hand-wavy, stop: dig exactly there",
		},
		Pitfalls: []string{
			"Paraphrasing blocks at a time; the method only works at the granularity of literal lines",
			"Narrating the happy path while the failing input takes the other branch",
		},
		Example: "Explaining a date filter aloud: 'this keeps events after the cutoff, strictly " +
			"after, wait, the boundary day is supposed to be deleted too.' The comparison wanted " +
			"less-or-equal; the duck never said a word.",
	},
}
