package prompts

const analyzeSpec = `Respond with a JSON object matching this exact structure:

{
  "is_relevant": true,
  "lead_score": 0,
  "lead_status": "<hot|warm|cold>",
  "sentiment": "<positive|neutral|negative>",
  "interest_level": "<high|medium|low|none>",
  "has_tested": false,
  "key_points": ["<point1>", "<point2>"],
  "recommended_action": "<follow_up|wait|close|ignore>",
  "follow_up_timing": "<immediate|3_days|1_week>",
  "personalization_hints": "<hints>",
  "reasoning": "<explanation>"
}

Field constraints:
- is_relevant: Whether the prospect plausibly buys tax research tooling.
  False for recruiters, vendors, students, and off-target roles.
- lead_score: Integer 0-100 combining role fit, engagement, and buying
  signals. A tested-and-enthusiastic prospect scores above 80; a silent
  cold contact scores below 30.
- lead_status: hot only with a concrete buying signal (tested, asked for
  demo or pricing). warm for genuine interest. cold otherwise.
- has_tested: True only when the transcript shows they actually used the
  product, not merely agreed to look at it.
- key_points: Concrete facts from the prospect's messages worth reusing
  later (objections, use cases, tools they mention, timing constraints).
- recommended_action: ignore for irrelevant prospects, close for clear
  refusals, wait when the ball is in their court, follow_up otherwise.
- follow_up_timing: Coarse next-touch delay. Halve your instinct for hot
  leads.
- personalization_hints: One or two short phrases the next message should
  build on.
- reasoning: Brief justification of the score and status.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Judge only from the transcript provided; never invent facts
- Missing or one-sided transcripts are cold, not hot`

const draftSpec = `Respond with a JSON object matching this exact structure:

{
  "message": "<the message text>",
  "rationale": "<why this message, one sentence>"
}

Field constraints:
- message: The complete next message, ready to send as-is. Respect the
  length style requested in the prompt (ultra_short is one or two
  sentences; long never exceeds one short paragraph).
- rationale: One sentence naming the tactic used and the prospect detail
  the message builds on.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never include a subject line, signature, or placeholder brackets
- Never repeat a previous message from the transcript`

var specs = map[Stage]string{
	StageAnalyze: analyzeSpec,
	StageDraft:   draftSpec,
}

// Spec returns the hardcoded specification for a workflow stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
