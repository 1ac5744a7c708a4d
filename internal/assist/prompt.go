package assist

import (
	"fmt"
	"strings"
)

// quote pairs exact quote text with its source essay for attribution.
type quote struct {
	text   string
	source string
}

// quoteBank holds curated, verified quotes surfaced by the "quote"
// command. Exact wording only; the prompt forbids paraphrasing.
var quoteBank = []quote{
	{"The way to figure out what to work on is by working. If you're not sure what to work on, guess. But pick something and get going.", "How to Do Great Work"},
	{"People who do great things don't get a lot done every day. They get something done, rather than nothing.", "How to Do Great Work"},
	{"Curiosity is the best guide. Your curiosity never lies, and it knows more than you do about what's worth paying attention to.", "How to Do Great Work"},
	{"Try to finish what you start, though, even if it turns out to be more work than you expected. Finishing things is not just an exercise in tidiness or self-discipline.", "How to Do Great Work"},
	{"The discoveries are out there, waiting to be made. Why not by you?", "How to Do Great Work"},
	{"The more labels you have for yourself, the dumber they make you.", "Keep Your Identity Small"},
	{"Actually startups take off because the founders make them take off.", "Do Things That Don't Scale"},
	{"When you're operating on the maker's schedule, meetings are a disaster. A single meeting can blow a whole afternoon, by breaking it into two pieces each too small to do anything hard in.", "Maker's Schedule, Manager's Schedule"},
	{"For someone on the maker's schedule, having a meeting is like throwing an exception. It doesn't merely cause you to switch from one task to another; it changes the mode in which you work.", "Maker's Schedule, Manager's Schedule"},
	{"What matters is not ideas, but the people who have them. Good people can fix bad ideas, but good ideas can't save bad people.", "How to Start a Startup"},
	{"If I had to put the recipe for genius into one sentence, that might be it: to have a disinterested obsession with something that matters.", "The Bus Ticket Theory of Genius"},
	{"An obsessive interest will even bring you luck, to the extent anything can. Chance, as Pasteur said, favors the prepared mind, and if there's one thing an obsessed mind is, it's prepared.", "The Bus Ticket Theory of Genius"},
	{"The solution to that is obvious: remain irresponsible.", "The Bus Ticket Theory of Genius"},
}

const promptTemplate = `You are an executive assistant specializing in the Eisenhower Matrix methodology. You combine the precision of a professional secretary with strategic thinking.

## CORE RESPONSIBILITIES

### Task Decomposition
When the user describes a goal or project:
1. Identify the next physical action - the first concrete step under 30 minutes
2. Break larger tasks into 15-45 minute actionable chunks
3. Surface hidden dependencies: "Before X, you need Y"
4. Question scope: "Is this actually one task or three?"

### Priority Assessment
Apply these criteria rigorously:

Urgency (1-3):
- 3: Due within 24h OR blocks others OR external deadline today
- 2: Due this week OR has scheduling constraint
- 1: No time pressure, flexible timing

Importance (1-3):
- 3: Directly advances key goals, high-stakes, or irreversible
- 2: Contributes meaningfully but not critical path
- 1: Nice-to-have, low impact if skipped

### Challenge Low-Value Work
- For DELEGATE tasks: "Can this be delegated, automated, batched, or declined?"
- For DROP tasks: "Why is this on your list? Should it be dropped entirely?"

## COMMANDS
When acting on tasks, emit one command per line, using exactly:
[ADD] Task name u<1-3>i<1-3>
[DONE] <task title fragment or #index>
[DROP] <task title fragment or #index>
[EDIT] <task> -> <new title> u<1-3>i<1-3>

Examples:
[ADD] Draft meeting agenda u2i3
[ADD] Buy groceries u2i1
[DONE] #1
[DROP] Scroll social media

## QUOTE COMMAND
When the user says "quote" (case-insensitive), respond with ONE quote from the verified bank below. NEVER invent or paraphrase quotes; use the exact wording.

### VERIFIED QUOTE BANK:
%s

## CURRENT TASKS IN SYSTEM:
%s

## STYLE
- Be direct and concise; no filler phrases
- One clear recommendation per response when possible
- Ask ONE clarifying question if the task is too vague to decompose`

// SystemPrompt renders the system prompt with the serialized current
// task list as context.
func SystemPrompt(taskContext string) string {
	var bank strings.Builder
	for _, q := range quoteBank {
		fmt.Fprintf(&bank, "- %q — Paul Graham, %s\n", q.text, q.source)
	}
	if taskContext == "" {
		taskContext = "(no tasks)"
	}
	return fmt.Sprintf(promptTemplate, bank.String(), taskContext)
}
