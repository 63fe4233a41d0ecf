package repos

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Aggregation pipelines for the composite read views. Each builder is a pure
// function over its input IDs so the stage lists can be inspected in tests.

// courseDetailsPipeline assembles the full course tree: the instructor
// flattened to a summary, modules sorted by order with their lessons nested
// and sorted by order, and the course's assignments.
func courseDetailsPipeline(courseID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": courseID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "instructors",
			"localField":   "instructor",
			"foreignField": "_id",
			"as":           "instructorDetails",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"instructorDetails": bson.M{"$arrayElemAt": bson.A{"$instructorDetails", 0}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "modules",
			"localField":   "_id",
			"foreignField": "course",
			"as":           "modules",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"modules": bson.M{"$sortArray": bson.M{
				"input":  "$modules",
				"sortBy": bson.M{"order": 1},
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "lessons",
			"localField":   "modules._id",
			"foreignField": "module",
			"as":           "allLessons",
		}}},
		// Fold each module's lessons back onto it, ordered.
		{{Key: "$addFields", Value: bson.M{
			"modules": bson.M{"$map": bson.M{
				"input": "$modules",
				"as":    "module",
				"in": bson.M{"$mergeObjects": bson.A{
					"$$module",
					bson.M{"lessons": bson.M{"$sortArray": bson.M{
						"input": bson.M{"$filter": bson.M{
							"input": "$allLessons",
							"as":    "lesson",
							"cond":  bson.M{"$eq": bson.A{"$$lesson.module", "$$module._id"}},
						}},
						"sortBy": bson.M{"order": 1},
					}}},
				}},
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "assignments",
			"localField":   "_id",
			"foreignField": "course",
			"as":           "assignments",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":             1,
			"title":           1,
			"description":     1,
			"coverImage":      1,
			"status":          1,
			"startDate":       1,
			"endDate":         1,
			"enrollmentCount": 1,
			"tags":            1,
			"settings":        1,
			"createdAt":       1,
			"updatedAt":       1,
			"instructor": bson.M{
				"_id":       "$instructorDetails._id",
				"firstName": "$instructorDetails.firstName",
				"lastName":  "$instructorDetails.lastName",
				"email":     "$instructorDetails.email",
				"fullName": bson.M{"$concat": bson.A{
					"$instructorDetails.firstName", " ", "$instructorDetails.lastName",
				}},
			},
			"modules": bson.M{
				"_id":             1,
				"title":           1,
				"description":     1,
				"order":           1,
				"isPublished":     1,
				"durationMinutes": 1,
				"lessons": bson.M{
					"_id":             1,
					"title":           1,
					"description":     1,
					"order":           1,
					"type":            1,
					"content":         1,
					"isPublished":     1,
					"durationMinutes": 1,
				},
			},
			"assignments": bson.M{
				"_id":         1,
				"title":       1,
				"description": 1,
				"dueDate":     1,
				"totalPoints": 1,
				"status":      1,
			},
		}}},
	}
}

// enrollmentDetailsPipeline builds the per-course dashboard for one student.
// Each enrolled course carries the instructor summary, the student's own
// submission and grade counts, an average grade, and a progress percentage
// computed against the course's active assignments (floored at one so a
// course without assignments does not divide by zero).
func enrollmentDetailsPipeline(studentID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": studentID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "enrolledCourses",
			"foreignField": "_id",
			"as":           "courses",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$courses", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "instructors",
			"localField":   "courses.instructor",
			"foreignField": "_id",
			"as":           "courses.instructorDetails",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"courses.instructorDetails": bson.M{"$arrayElemAt": bson.A{"$courses.instructorDetails", 0}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "submissions",
			"let":  bson.M{"studentId": "$_id", "courseId": "$courses._id"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$student", "$$studentId"}},
					bson.M{"$eq": bson.A{"$course", "$$courseId"}},
				}}}}},
			},
			"as": "courses.submissions",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "grades",
			"let":  bson.M{"studentId": "$_id", "courseId": "$courses._id"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$student", "$$studentId"}},
					bson.M{"$eq": bson.A{"$course", "$$courseId"}},
				}}}}},
			},
			"as": "courses.grades",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "assignments",
			"let":  bson.M{"courseId": "$courses._id"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$course", "$$courseId"}},
					bson.M{"$eq": bson.A{"$status", "active"}},
				}}}}},
			},
			"as": "courses.activeAssignments",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"courses.progress": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{bson.M{"$size": "$courses.submissions"}, 0}},
				"then": 0,
				"else": bson.M{"$let": bson.M{
					"vars": bson.M{
						"totalAssignments": bson.M{"$size": "$courses.activeAssignments"},
					},
					"in": bson.M{"$multiply": bson.A{
						bson.M{"$divide": bson.A{
							bson.M{"$size": "$courses.submissions"},
							bson.M{"$cond": bson.A{
								bson.M{"$eq": bson.A{"$$totalAssignments", 0}},
								1,
								"$$totalAssignments",
							}},
						}},
						100,
					}},
				}},
			}},
			"courses.averageGrade": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{bson.M{"$size": "$courses.grades"}, 0}},
				"then": nil,
				"else": bson.M{"$avg": "$courses.grades.score"},
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$_id",
			"firstName": bson.M{"$first": "$firstName"},
			"lastName":  bson.M{"$first": "$lastName"},
			"email":     bson.M{"$first": "$email"},
			"courses":   bson.M{"$push": "$courses"},
		}}},
		// The preserved unwind leaves one empty course for students with no
		// enrollments; drop it.
		{{Key: "$addFields", Value: bson.M{
			"courses": bson.M{"$filter": bson.M{
				"input": "$courses",
				"as":    "course",
				"cond":  bson.M{"$ifNull": bson.A{"$$course._id", false}},
			}},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":       1,
			"firstName": 1,
			"lastName":  1,
			"email":     1,
			"fullName":  bson.M{"$concat": bson.A{"$firstName", " ", "$lastName"}},
			"courses": bson.M{"$map": bson.M{
				"input": "$courses",
				"as":    "course",
				"in": bson.M{
					"_id":         "$$course._id",
					"title":       "$$course.title",
					"description": "$$course.description",
					"status":      "$$course.status",
					"startDate":   "$$course.startDate",
					"endDate":     "$$course.endDate",
					"instructor":  "$$course.instructor",
					"instructorDetails": bson.M{
						"_id":       "$$course.instructorDetails._id",
						"firstName": "$$course.instructorDetails.firstName",
						"lastName":  "$$course.instructorDetails.lastName",
						"email":     "$$course.instructorDetails.email",
						"fullName": bson.M{"$concat": bson.A{
							"$$course.instructorDetails.firstName",
							" ",
							"$$course.instructorDetails.lastName",
						}},
					},
					"progress":          "$$course.progress",
					"averageGrade":      "$$course.averageGrade",
					"submissionCount":   bson.M{"$size": "$$course.submissions"},
					"gradedAssignments": bson.M{"$size": "$$course.grades"},
				},
			}},
		}}},
	}
}

// studentPerformancePipeline runs over grades: per-course averages with the
// individual assignment scores, then a single overall rollup row.
func studentPerformancePipeline(studentID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student": studentID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "assignments",
			"localField":   "assignment",
			"foreignField": "_id",
			"as":           "assignmentDetails",
		}}},
		{{Key: "$unwind", Value: "$assignmentDetails"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "course",
			"foreignField": "_id",
			"as":           "courseDetails",
		}}},
		{{Key: "$unwind", Value: "$courseDetails"}},
		{{Key: "$group", Value: bson.M{
			"_id":              "$course",
			"courseTitle":      bson.M{"$first": "$courseDetails.title"},
			"averageScore":     bson.M{"$avg": "$score"},
			"totalAssignments": bson.M{"$sum": 1},
			"assignments": bson.M{"$push": bson.M{
				"_id":         "$assignment",
				"title":       "$assignmentDetails.title",
				"score":       "$score",
				"totalPoints": "$assignmentDetails.totalPoints",
				"percentageScore": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$assignmentDetails.totalPoints", 0}},
					0,
					bson.M{"$multiply": bson.A{
						bson.M{"$divide": bson.A{"$score", "$assignmentDetails.totalPoints"}},
						100,
					}},
				}},
				"gradedAt": "$gradedAt",
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":                       nil,
			"overallAverage":            bson.M{"$avg": "$averageScore"},
			"totalCompletedAssignments": bson.M{"$sum": "$totalAssignments"},
			"coursePerformance":         bson.M{"$push": "$$ROOT"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":                       0,
			"overallAverage":            1,
			"totalCompletedAssignments": 1,
			"coursePerformance":         1,
		}}},
	}
}

// submissionStatisticsPipeline groups one student's submissions by status and
// counts the late ones with a separate sub-lookup.
func submissionStatisticsPipeline(studentID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student": studentID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "assignments",
			"localField":   "assignment",
			"foreignField": "_id",
			"as":           "assignmentDetails",
		}}},
		{{Key: "$unwind", Value: "$assignmentDetails"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"submissions": bson.M{"$push": bson.M{
				"_id":             "$_id",
				"assignment":      "$assignment",
				"assignmentTitle": "$assignmentDetails.title",
				"status":          "$status",
				"submittedAt":     "$submittedAt",
				"isLate":          "$isLate",
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"totalSubmissions": bson.M{"$sum": "$count"},
			"statusBreakdown": bson.M{"$push": bson.M{
				"status":      "$_id",
				"count":       "$count",
				"submissions": "$submissions",
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "submissions",
			"let":  bson.M{},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"student": studentID, "isLate": true}}},
				{{Key: "$count", Value: "count"}},
			},
			"as": "lateSubmissions",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"lateSubmissionsCount": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{bson.M{"$size": "$lateSubmissions"}, 0}},
				"then": 0,
				"else": bson.M{"$arrayElemAt": bson.A{"$lateSubmissions.count", 0}},
			}},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":                  0,
			"totalSubmissions":     1,
			"lateSubmissionsCount": 1,
			"statusBreakdown":      1,
		}}},
	}
}
