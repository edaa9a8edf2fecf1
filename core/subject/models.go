package subject

// Subject is one entry of the subject-selection screen. Inactive subjects
// show up as "coming soon" and expose no content.
type Subject struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	Description string `json:"description" yaml:"description"`
	IsActive    bool   `json:"is_active" yaml:"is_active"`
}

// Content groups everything the subject-detail view presents.
type Content struct {
	Materials       []Material       `json:"materials" yaml:"materials"`
	Tests           []Test           `json:"tests" yaml:"tests"`
	SelfAssessments []SelfAssessment `json:"self_assessments" yaml:"self_assessments"`
	Games           []Game           `json:"games" yaml:"games"`
	Videos          []Video          `json:"videos" yaml:"videos"`
}

type Material struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Type       string `json:"type" yaml:"type"` // PDF, DOCX, ...
	Size       string `json:"size" yaml:"size"`
	UploadedBy string `json:"uploaded_by" yaml:"uploaded_by"`
	Date       string `json:"date" yaml:"date"`
	Completed  bool   `json:"completed" yaml:"completed"`
}

type Test struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Questions  int    `json:"questions" yaml:"questions"`
	TimeLimit  string `json:"time_limit" yaml:"time_limit"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	Score      *int   `json:"score" yaml:"score"`
	Completed  bool   `json:"completed" yaml:"completed"`
	Attempts   int    `json:"attempts" yaml:"attempts"`
}

type SelfAssessment struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Score       *int   `json:"score" yaml:"score"`
}

type Game struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	Icon           string `json:"icon" yaml:"icon"`
	Difficulty     string `json:"difficulty" yaml:"difficulty"`
	Players        string `json:"players" yaml:"players"`
	TimeToComplete string `json:"time_to_complete" yaml:"time_to_complete"`
	XPReward       int    `json:"xp_reward" yaml:"xp_reward"`
	Unlocked       bool   `json:"unlocked" yaml:"unlocked"`
}

type Video struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Duration   string `json:"duration" yaml:"duration"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Thumbnail  string `json:"thumbnail" yaml:"thumbnail"`
	Completed  bool   `json:"completed" yaml:"completed"`
	Quality    string `json:"quality" yaml:"quality"`
}

// Activity types tracked against subject content.
const (
	ActivityMaterial       = "material"
	ActivitySelfAssessment = "self_assessment"
	ActivityTest           = "test"
	ActivityGame           = "game"
	ActivityVideo          = "video"
)
