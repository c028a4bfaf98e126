package patterns

import "regexp"

// conditionRules map seller vocabulary to normalized condition labels.
// Evaluated in declaration order, first match wins; "mint" precedes
// "near_mint" so slab-style "PSA 10 Mint" titles resolve to mint.
var conditionRules = []ConditionRule{
	{"mint", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmint\b`),
		regexp.MustCompile(`(?i)\bmt\b`),
		regexp.MustCompile(`(?i)\bgem\s+mint\b`),
		regexp.MustCompile(`(?i)\bperfect\b`),
	}},
	{"near_mint", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnear\s+mint\b`),
		regexp.MustCompile(`(?i)\bnm\b`),
		regexp.MustCompile(`(?i)\bnear-mint\b`),
		regexp.MustCompile(`(?i)\bexcellent\b`),
	}},
	{"lightly_played", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\blightly\s+played\b`),
		regexp.MustCompile(`(?i)\blp\b`),
		regexp.MustCompile(`(?i)\blight\s+play\b`),
		regexp.MustCompile(`(?i)\bvery\s+good\b`),
	}},
	{"moderately_played", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmoderately\s+played\b`),
		regexp.MustCompile(`(?i)\bmp\b`),
		regexp.MustCompile(`(?i)\bplayed\b`),
		regexp.MustCompile(`(?i)\bgood\b`),
	}},
	{"heavily_played", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bheavily\s+played\b`),
		regexp.MustCompile(`(?i)\bhp\b`),
		regexp.MustCompile(`(?i)\bpoor\b`),
	}},
	{"damaged", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bdamaged\b`),
		regexp.MustCompile(`(?i)\bdmg\b`),
		regexp.MustCompile(`(?i)\bfair\b`),
	}},
}

// gradingRules match graded-slab notation per grading company.
// PSA issues whole grades only; BGS and CGC allow half grades.
var gradingRules = []GradingRule{
	{"psa", regexp.MustCompile(`(?i)\bpsa\s*(?:10|[1-9])\b`)},
	{"bgs", regexp.MustCompile(`(?i)\b(?:bgs|beckett)\s*(?:10|9\.5|9|8\.5|8|7\.5|7|6\.5|6)\b`)},
	{"cgc", regexp.MustCompile(`(?i)\bcgc\s*(?:10|9\.5|9|8\.5|8|7\.5|7|6\.5|6)\b`)},
}

// gradeNumber pulls the numeric grade out of a grading-rule match.
var gradeNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// GradeNumber returns the pattern extracting the numeric grade from a
// matched grading notation.
func GradeNumber() *regexp.Regexp {
	return gradeNumber
}
