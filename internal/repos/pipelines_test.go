package repos

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// stageKeys flattens a pipeline to its stage operator names.
func stageKeys(p mongo.Pipeline) []string {
	keys := make([]string, 0, len(p))
	for _, stage := range p {
		keys = append(keys, stage[0].Key)
	}
	return keys
}

func lookupFrom(t *testing.T, stage bson.D) string {
	t.Helper()
	spec, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatalf("stage value is %T, want bson.M", stage[0].Value)
	}
	from, ok := spec["from"].(string)
	if !ok {
		t.Fatalf("lookup has no from field: %v", spec)
	}
	return from
}

func TestCourseDetailsPipelineShape(t *testing.T) {
	id := primitive.NewObjectID()
	p := courseDetailsPipeline(id)

	want := []string{
		"$match", "$lookup", "$addFields", "$lookup", "$addFields",
		"$lookup", "$addFields", "$lookup", "$project",
	}
	got := stageKeys(p)
	if len(got) != len(want) {
		t.Fatalf("stage count=%d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage[%d]=%s, want %s", i, got[i], want[i])
		}
	}

	match := p[0][0].Value.(bson.M)
	if match["_id"] != id {
		t.Fatalf("match _id=%v, want %v", match["_id"], id)
	}

	froms := []string{lookupFrom(t, p[1]), lookupFrom(t, p[3]), lookupFrom(t, p[5]), lookupFrom(t, p[7])}
	wantFroms := []string{"instructors", "modules", "lessons", "assignments"}
	for i := range wantFroms {
		if froms[i] != wantFroms[i] {
			t.Fatalf("lookup[%d] from=%s, want %s", i, froms[i], wantFroms[i])
		}
	}
}

func TestEnrollmentDetailsPipelineShape(t *testing.T) {
	id := primitive.NewObjectID()
	p := enrollmentDetailsPipeline(id)

	got := stageKeys(p)
	want := []string{
		"$match", "$lookup", "$unwind", "$lookup", "$addFields",
		"$lookup", "$lookup", "$lookup", "$addFields", "$group",
		"$addFields", "$project",
	}
	if len(got) != len(want) {
		t.Fatalf("stage count=%d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage[%d]=%s, want %s", i, got[i], want[i])
		}
	}

	// The unwind must preserve students with no enrollments.
	unwind := p[2][0].Value.(bson.M)
	if unwind["preserveNullAndEmptyArrays"] != true {
		t.Fatal("unwind must preserve empty course arrays")
	}

	// Submissions and grades lookups are correlated on both student and course.
	for _, i := range []int{5, 6} {
		spec := p[i][0].Value.(bson.M)
		let, ok := spec["let"].(bson.M)
		if !ok {
			t.Fatalf("lookup[%d] has no let bindings", i)
		}
		if let["studentId"] != "$_id" || let["courseId"] != "$courses._id" {
			t.Fatalf("lookup[%d] let=%v, want studentId/courseId bindings", i, let)
		}
	}

	// Progress counts only active assignments.
	active := p[7][0].Value.(bson.M)
	if from := active["from"]; from != "assignments" {
		t.Fatalf("activeAssignments lookup from=%v, want assignments", from)
	}
	if active["as"] != "courses.activeAssignments" {
		t.Fatalf("activeAssignments lookup as=%v", active["as"])
	}
}

func TestStudentPerformancePipelineShape(t *testing.T) {
	id := primitive.NewObjectID()
	p := studentPerformancePipeline(id)

	got := stageKeys(p)
	want := []string{
		"$match", "$lookup", "$unwind", "$lookup", "$unwind",
		"$group", "$group", "$project",
	}
	if len(got) != len(want) {
		t.Fatalf("stage count=%d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage[%d]=%s, want %s", i, got[i], want[i])
		}
	}

	match := p[0][0].Value.(bson.M)
	if match["student"] != id {
		t.Fatalf("match student=%v, want %v", match["student"], id)
	}

	perCourse := p[5][0].Value.(bson.M)
	if perCourse["_id"] != "$course" {
		t.Fatalf("per-course group _id=%v, want $course", perCourse["_id"])
	}
	rollup := p[6][0].Value.(bson.M)
	if rollup["_id"] != nil {
		t.Fatalf("rollup group _id=%v, want nil", rollup["_id"])
	}
}

func TestSubmissionStatisticsPipelineShape(t *testing.T) {
	id := primitive.NewObjectID()
	p := submissionStatisticsPipeline(id)

	got := stageKeys(p)
	want := []string{
		"$match", "$lookup", "$unwind", "$group", "$group",
		"$lookup", "$addFields", "$project",
	}
	if len(got) != len(want) {
		t.Fatalf("stage count=%d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage[%d]=%s, want %s", i, got[i], want[i])
		}
	}

	byStatus := p[3][0].Value.(bson.M)
	if byStatus["_id"] != "$status" {
		t.Fatalf("group _id=%v, want $status", byStatus["_id"])
	}

	// The late-count sub-lookup filters by the same student and isLate.
	late := p[5][0].Value.(bson.M)
	sub, ok := late["pipeline"].(mongo.Pipeline)
	if !ok {
		t.Fatalf("late lookup pipeline is %T", late["pipeline"])
	}
	lateMatch := sub[0][0].Value.(bson.M)
	if lateMatch["student"] != id || lateMatch["isLate"] != true {
		t.Fatalf("late match=%v, want student+isLate", lateMatch)
	}
}
