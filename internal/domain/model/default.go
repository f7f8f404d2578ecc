package model

// DefaultPointsPerSlot is awarded per assigned slot unless configured
// otherwise.
const DefaultPointsPerSlot = 10

// defaultProctorIDs is the seed roster used when no stored snapshot exists.
var defaultProctorIDs = []string{
	"Imqandyl", "fkuruthl", "neali", "Hankhali", "kqaddour", "mohkhan",
	"mosami", "abardhan", "aabashee", "aradwan", "mamuzamm", "ytapano",
	"absalem", "nakhalil", "maabdulr", "mbabayan", "aalbugar", "ghsaad",
	"Amagoury", "sngantch", "aali2", "aalbobak", "meid", "rradin-m",
	"Desteve", "Nosman", "hbasheer", "enoshahi", "nkunnath", "sgantch",
	"ffidha", "hassaleh", "dimirzoe", "tabadawi",
}

// DefaultSnapshot builds the seed state used when the store holds no
// parseable snapshot: the fixed proctor roster, four exams (4/4/4/8 hours,
// slots not yet generated), and one sample event.
func DefaultSnapshot(pointsPerSlot int) Snapshot {
	if pointsPerSlot <= 0 {
		pointsPerSlot = DefaultPointsPerSlot
	}
	proctors := make([]Person, len(defaultProctorIDs))
	for i, id := range defaultProctorIDs {
		proctors[i] = Person{ID: id, Name: titleCase(id)}
	}
	s := Snapshot{
		Proctors:   proctors,
		Volunteers: []Person{},
		Exams: []Exam{
			{ID: "exam00", Name: "Exam00", Duration: 4, Slots: []Slot{}},
			{ID: "exam01", Name: "Exam01", Duration: 4, Slots: []Slot{}},
			{ID: "exam02", Name: "Exam02", Duration: 4, Slots: []Slot{}},
			{ID: "exam03", Name: "Exam03", Duration: 8, Slots: []Slot{}},
		},
		Events: []Event{
			{
				ID:                 "event00",
				Name:               "Orientation Day",
				Duration:           3,
				Date:               "2026-09-01",
				StartTime:          "09:00",
				RequiredVolunteers: 5,
				VolunteerIDs:       []string{},
				Slots:              []Slot{},
			},
		},
		PointsPerSlot: pointsPerSlot,
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	head := s[:1]
	if head >= "a" && head <= "z" {
		head = string(head[0] - 'a' + 'A')
	}
	return head + s[1:]
}
