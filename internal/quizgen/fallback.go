package quizgen

// FallbackQuiz returns the fixed three-question quiz served when the model
// reply cannot be used. Only the industry shapes the content.
func FallbackQuiz(industry string, _ []string) Quiz {
	return Quiz{
		{
			Question: "What is the most important skill for a " + industryLabel(industry) + " professional?",
			Options: []string{
				"Technical expertise",
				"Communication skills",
				"Problem-solving ability",
				"Time management",
			},
			CorrectAnswer: "Problem-solving ability",
			Explanation:   "Problem-solving is crucial across all technical roles as it combines technical knowledge with analytical thinking.",
		},
		{
			Question: "How would you approach learning new technologies?",
			Options: []string{
				"Self-study only",
				"Formal training courses",
				"Hands-on practice with mentorship",
				"Reading documentation exclusively",
			},
			CorrectAnswer: "Hands-on practice with mentorship",
			Explanation:   "Combining practical experience with guidance from experienced professionals is the most effective learning approach.",
		},
		{
			Question: "What's the best way to handle a challenging technical problem?",
			Options: []string{
				"Work on it alone until solved",
				"Ask for help immediately",
				"Break it down into smaller parts",
				"Look for similar solutions online",
			},
			CorrectAnswer: "Break it down into smaller parts",
			Explanation:   "Breaking complex problems into manageable components is a fundamental problem-solving technique.",
		},
	}
}
