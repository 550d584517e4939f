package model

// Evaluation is the hire/no-hire verdict produced from a full transcript.
// JSON names match the scoring oracle's documented output.
type Evaluation struct {
	HireProbability float64  `json:"hire_probability"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	FinalVerdict    string   `json:"final_verdict"`
}
