package templates

// Constructors building EmailJob.Data for each notification type.

func NewDailyQuestionData(appURL, category, question string) map[string]any {
	return ToMap(EmailData{
		AppURL:   appURL,
		Category: category,
		Question: question,
	})
}

func NewPointsAwardedData(appURL, name string, points int, reason string) map[string]any {
	return ToMap(EmailData{
		AppURL: appURL,
		Name:   name,
		Points: points,
		Reason: reason,
	})
}

// NewPointsUpdatedData carries the before/after diff shown to every affected
// profile. The diff is the same for each recipient; it is not personalized.
func NewPointsUpdatedData(appURL, ownerName string, before, after int, reason string) map[string]any {
	return ToMap(EmailData{
		AppURL:       appURL,
		Name:         ownerName,
		BeforePoints: before,
		AfterPoints:  after,
		Reason:       reason,
	})
}

func NewProposalCreatedData(appURL, proposerName string, points int, reason string) map[string]any {
	return ToMap(EmailData{
		AppURL:       appURL,
		ProposerName: proposerName,
		Points:       points,
		Reason:       reason,
	})
}

func NewProposalApprovedData(appURL, proposerName string, points int, reason string) map[string]any {
	return ToMap(EmailData{
		AppURL:       appURL,
		ProposerName: proposerName,
		Points:       points,
		Reason:       reason,
	})
}
