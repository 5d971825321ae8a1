package catalog

// Fallback is the catalog used when no dataset can be loaded.
func Fallback() []Exercise {
	return []Exercise{
		{Title: "Push-ups", Type: "Strength", Equipment: "Body Only", Level: "Beginner", BodyPart: "Chest", Rating: 8.5, Description: "Classic chest exercise"},
		{Title: "Squats", Type: "Strength", Equipment: "Body Only", Level: "Beginner", BodyPart: "Quadriceps", Rating: 9.0, Description: "Lower body strength exercise"},
		{Title: "Pull-ups", Type: "Strength", Equipment: "Body Only", Level: "Intermediate", BodyPart: "Lats", Rating: 8.8, Description: "Upper body pulling exercise"},
		{Title: "Running", Type: "Cardio", Equipment: "Body Only", Level: "Beginner", BodyPart: "Quadriceps", Rating: 9.2, Description: "Aerobic cardiovascular exercise"},
		{Title: "Plank", Type: "Strength", Equipment: "Body Only", Level: "Beginner", BodyPart: "Abdominals", Rating: 9.3, Description: "Core stability exercise"},
	}
}
