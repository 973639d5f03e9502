package dialogue

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		utterance string
		awaiting  bool
		want      Kind
	}{
		{"2", false, KindAnswer},
		{"two guests", false, KindAnswer},
		{"suite", false, KindAnswer},
		{"standard room", false, KindAnswer},
		{"ada@example.com", false, KindAnswer},

		{"what time is breakfast?", false, KindFacilityQuestion},
		{"is there a pool", false, KindFacilityQuestion},
		{"do you have parking", false, KindFacilityQuestion},
		{"how much does a suite cost", false, KindFacilityQuestion},

		{"what is the meaning of life", false, KindGenericQuestion},
		{"can you sing", false, KindGenericQuestion},
		{"really?", false, KindGenericQuestion},
		{"hmm, what does that mean", false, KindGenericQuestion},
		{"i don't know", false, KindGenericQuestion},
		{"i dont know", false, KindGenericQuestion},

		{"yes", true, KindResume},
		{"sure, go ahead", true, KindResume},
		{"ok", true, KindResume},
		{"doorgaan", true, KindResume},
		{"no more questions", true, KindResume},
		{"i don't need anymore", true, KindResume},
		{"lets go", true, KindResume},

		{"no, tell me more", true, KindMoreInfo},
		{"another question", true, KindMoreInfo},
		{"nope", true, KindMoreInfo},

		{"what time is breakfast?", true, KindFacilityQuestion},

		{"the weather is nice", true, KindHeld},
		{"42", true, KindHeld},

		{ContinueMarker, true, KindResume},
		{ContinueMarker, false, KindResume},
	}
	for _, tt := range tests {
		got, _ := Classify(tt.utterance, tt.awaiting)
		if got != tt.want {
			t.Fatalf("Classify(%q, awaiting=%v) = %q, want %q", tt.utterance, tt.awaiting, got, tt.want)
		}
	}
}

func TestClassifyYesOutsideCheckpointIsAnswer(t *testing.T) {
	// Affirmatives only act as resumption signals while awaiting;
	// otherwise they go to the current slot's validator.
	if got, _ := Classify("yes", false); got != KindAnswer {
		t.Fatalf("Classify(yes, awaiting=false) = %q, want %q", got, KindAnswer)
	}
}

func TestIsBookingIntent(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"I want to book a room", true},
		{"make a reservation please", true},
		{"reserve", true},
		{"booking", true},
		{"2 guests", false},
		{"my email is booker@example.com", false},
	}
	for _, tt := range tests {
		if got := isBookingIntent(tt.utterance); got != tt.want {
			t.Fatalf("isBookingIntent(%q) = %v, want %v", tt.utterance, got, tt.want)
		}
	}
}
