package domain

// Question is one entry of the interview script. Questions are defined once
// at startup and never mutated; slice order is the interview order.
type Question struct {
	ID       string
	Category string
	Prompt   string
	Required bool
	FollowUp string
}

// DefaultQuestions returns the built-in asylum interview script.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       "personal_info_1",
			Category: "personal_information",
			Prompt:   "Please state your full name as it appears on your documents.",
			Required: true,
			FollowUp: "Could you spell your last name for me?",
		},
		{
			ID:       "origin_1",
			Category: "origin",
			Prompt:   "What is your country of origin?",
			Required: true,
			FollowUp: "Which specific city or region are you from?",
		},
		{
			ID:       "language_1",
			Category: "language",
			Prompt:   "What is your native language? Do you speak any other languages?",
			Required: true,
		},
		{
			ID:       "persecution_1",
			Category: "persecution",
			Prompt:   "Can you describe the main reason you are seeking asylum? What happened that made you leave your country?",
			Required: true,
			FollowUp: "Can you provide more specific details about what happened?",
		},
		{
			ID:       "timeline_1",
			Category: "timeline",
			Prompt:   "When did you leave your home country? What was your journey like?",
			Required: true,
			FollowUp: "Did you travel directly to Switzerland?",
		},
		{
			ID:       "family_1",
			Category: "family",
			Prompt:   "Do you have any family members with you or still in your home country?",
			FollowUp: "Are any family members in danger?",
		},
		{
			ID:       "previous_applications",
			Category: "legal_history",
			Prompt:   "Have you applied for asylum in any other country before coming to Switzerland?",
			Required: true,
			FollowUp: "What was the outcome of that application?",
		},
		{
			ID:       "documentation",
			Category: "evidence",
			Prompt:   "Do you have any documents to support your application, such as identity documents, medical records, or evidence of persecution?",
			FollowUp: "If you don't have documents, can you explain why?",
		},
	}
}
