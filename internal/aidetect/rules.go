package aidetect

import "regexp"

// phraseRule flags a known AI cliché found anywhere in the text.
type phraseRule struct {
	Phrase     string
	Suggestion string
}

// Clichés that read as machine-written. Each hit costs 2 points.
var forbiddenPhrases = []phraseRule{
	{"delve into", "say \"dig into\" or just name the thing directly"},
	{"dive deep", "drop the diving metaphor, state the point"},
	{"game-changer", "describe the actual change instead"},
	{"game changing", "describe the actual change instead"},
	{"unlock the power", "say what the reader can now do"},
	{"unleash", "use a plainer verb like \"use\" or \"get\""},
	{"elevate your", "name the concrete improvement"},
	{"take it to the next level", "say what the next level actually is"},
	{"in today's fast-paced world", "cut the throat-clearing, start with your point"},
	{"in this digital age", "cut the throat-clearing, start with your point"},
	{"look no further", "cut it, nobody talks like this"},
	{"revolutionize", "use a smaller, truer verb"},
	{"seamlessly", "cut it or describe the actual experience"},
	{"effortlessly", "cut it, nothing is effortless"},
	{"harness the power", "say \"use\""},
	{"embark on a journey", "say \"start\""},
	{"navigate the landscape", "name the specific challenge instead"},
	{"robust solution", "describe what it actually handles"},
	{"cutting-edge", "name the specific capability"},
	{"state-of-the-art", "name the specific capability"},
	{"tapestry", "pick a concrete noun"},
	{"treasure trove", "say what's actually in it"},
	{"whether you're a", "pick one reader and write to them"},
	{"it's important to note", "just note it"},
	{"at the end of the day", "cut it or say \"ultimately\" once"},
	{"supercharge", "use a plainer verb"},
	{"skyrocket", "give a real number instead"},
}

// patternRule flags a structural AI tic; scored once per pattern type no
// matter how often it occurs.
type patternRule struct {
	Re         *regexp.Regexp
	Label      string
	Suggestion string
}

var aiPatterns = []patternRule{
	{regexp.MustCompile(`(?i)\bhere's what\b`), "\"here's what\" setup", "lead with the content, not the announcement of it"},
	{regexp.MustCompile(`(?i)\bhere's the thing\b`), "\"here's the thing\" setup", "lead with the thing itself"},
	{regexp.MustCompile(`(?i)\blet me know your thoughts\b`), "\"let me know your thoughts\" closer", "ask one specific question instead"},
	{regexp.MustCompile(`(?i)\blet's explore\b`), "\"let's explore\" transition", "just present the material"},
	{regexp.MustCompile(`(?i)\bcertainly!`), "assistant-style \"certainly!\"", "delete it, it's chatbot residue"},
	{regexp.MustCompile(`(?i)\bgreat question\b`), "\"great question\" filler", "delete it, it's chatbot residue"},
	{regexp.MustCompile(`(?i)\bwithout further ado\b`), "\"without further ado\" transition", "cut straight to the content"},
	{regexp.MustCompile(`(?i)\bbut wait, there's more\b`), "infomercial transition", "let the next point stand on its own"},
	{regexp.MustCompile(`(?i)\bimagine a world\b`), "\"imagine a world\" opener", "ground the opener in the reader's actual situation"},
	{regexp.MustCompile(`(?i)\bthe best part\?`), "\"the best part?\" self-interview", "state the benefit as a sentence"},
	{regexp.MustCompile(`(?i)^\s*in conclusion\b`), "\"in conclusion\" closer", "end on the strongest point instead of a summary label"},
}

// Hedging and hype words counted as whole words against sentence count.
var qualifierRe = regexp.MustCompile(`\b(really|very|actually|truly|incredibly|powerful|amazing|absolutely|literally|ultimate|essential|transformative|remarkable)\b`)

var tripleListRe = regexp.MustCompile(`\w+,\s+\w+,\s+(and\s+)?\w+`)
