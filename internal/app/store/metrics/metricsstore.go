// Package metricsstore computes the dashboard report over the students
// and courses collections.
//
// The report is assembled from several independent queries with no shared
// snapshot. Under concurrent writes the sub-fields may reflect slightly
// different moments in time; that is accepted for a dashboard display and
// must not be papered over with locking. Any query error aborts the whole
// report — callers get the full report or an error, never a partial one.
package metricsstore

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// trendWindow is how far back the enrollment trend looks.
const trendWindow = 42 * 24 * time.Hour

// StatusCount is one funnel bucket: an engagement status and how many
// non-admitted records hold it.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// ActivityEntry is the display-safe projection of a record for the
// recent-activity list.
type ActivityEntry struct {
	Name      string    `bson:"name" json:"name"`
	Course    string    `bson:"course" json:"course"`
	Status    string    `bson:"status" json:"status"`
	Admitted  bool      `bson:"admitted" json:"admitted"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	Fee       float64   `bson:"fee,omitempty" json:"fee,omitempty"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email" json:"email"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ReminderEntry is one upcoming reminder.
type ReminderEntry struct {
	Name         string    `bson:"name" json:"name"`
	ReminderDate time.Time `bson:"reminder_date" json:"reminderDate"`
	Course       string    `bson:"course" json:"course"`
}

// CourseCount is one bar of the course-distribution chart.
type CourseCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TrendPoint is one bucket of the enrollment trend. Name is positional
// ("Week 1", "Week 2", ...) in chronological order of the buckets that
// are actually present, not the calendar week number.
type TrendPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DashboardStats is the consolidated report for the admin dashboard.
type DashboardStats struct {
	TotalStudents     int64           `json:"totalStudents"`
	LeadCount         int64           `json:"leadCount"`
	AdmittedCount     int64           `json:"admittedCount"`
	InterestedCount   int64           `json:"interestedCount"`
	PendingReminders  int64           `json:"pendingReminders"`
	SuccessRate       float64         `json:"successRate"`
	Revenue           float64         `json:"revenue"`
	PotentialRevenue  float64         `json:"potentialRevenue"`
	Referrals         float64         `json:"referrals"`
	StatusBreakdown   []StatusCount   `json:"statusBreakdown"`
	RecentActivity    []ActivityEntry `json:"recentActivity"`
	UpcomingReminders []ReminderEntry `json:"upcomingReminders"`
	StudentData       []CourseCount   `json:"studentData"`
	EngagementData    []TrendPoint    `json:"engagementData"`
	AllCourses        []string        `json:"allCourses"`
}

// FetchDashboardStats builds the full report as of now.
func FetchDashboardStats(ctx context.Context, db *mongo.Database) (*DashboardStats, error) {
	students := db.Collection("students")
	now := time.Now()

	out := &DashboardStats{}

	var err error
	if out.TotalStudents, err = students.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if out.LeadCount, err = students.CountDocuments(ctx, bson.M{"admitted": false}); err != nil {
		return nil, err
	}
	if out.AdmittedCount, err = students.CountDocuments(ctx, bson.M{"admitted": true}); err != nil {
		return nil, err
	}
	if out.InterestedCount, err = students.CountDocuments(ctx, bson.M{"status": "Interested"}); err != nil {
		return nil, err
	}
	if out.PendingReminders, err = students.CountDocuments(ctx, bson.M{"remind": true}); err != nil {
		return nil, err
	}

	// Admitted / total, as a percentage with one decimal. Zero, not NaN,
	// on an empty collection.
	if out.TotalStudents > 0 {
		rate := float64(out.AdmittedCount) / float64(out.TotalStudents) * 100
		out.SuccessRate = math.Round(rate*10) / 10
	}

	if err := fetchFinancials(ctx, students, out); err != nil {
		return nil, err
	}

	if out.StatusBreakdown, err = fetchStatusBreakdown(ctx, students); err != nil {
		return nil, err
	}
	if out.RecentActivity, err = fetchRecentActivity(ctx, students); err != nil {
		return nil, err
	}
	if out.UpcomingReminders, err = fetchUpcomingReminders(ctx, students, now); err != nil {
		return nil, err
	}

	if out.AllCourses, err = fetchCourseNames(ctx, db.Collection("courses")); err != nil {
		return nil, err
	}
	if out.StudentData, err = fetchCourseDistribution(ctx, students, out.AllCourses); err != nil {
		return nil, err
	}
	if out.EngagementData, err = fetchEngagementTrend(ctx, students, now.Add(-trendWindow)); err != nil {
		return nil, err
	}

	return out, nil
}

// fetchFinancials computes all three money figures in one pass:
// potential revenue sums fee over every record (a lead's hypothetical fee
// counts), while revenue and referrals only sum over admitted records.
func fetchFinancials(ctx context.Context, students *mongo.Collection, out *DashboardStats) error {
	admittedFee := bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$admitted", true}}, "$fee", 0}}
	admittedBonus := bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$admitted", true}}, "$referral_bonus", 0}}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":               nil,
			"potential_revenue": bson.M{"$sum": "$fee"},
			"revenue":           bson.M{"$sum": admittedFee},
			"referrals":         bson.M{"$sum": admittedBonus},
		}}},
	}

	cur, err := students.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var rows []struct {
		PotentialRevenue float64 `bson:"potential_revenue"`
		Revenue          float64 `bson:"revenue"`
		Referrals        float64 `bson:"referrals"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return err
	}
	// Empty collection yields no group document; the zeros stand.
	if len(rows) > 0 {
		out.PotentialRevenue = rows[0].PotentialRevenue
		out.Revenue = rows[0].Revenue
		out.Referrals = rows[0].Referrals
	}
	return nil
}

// fetchStatusBreakdown groups non-admitted records by engagement status.
// The buckets sum to the lead count; admitted records never appear.
func fetchStatusBreakdown(ctx context.Context, students *mongo.Collection) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"admitted": false}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := students.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	breakdown := []StatusCount{}
	if err := cur.All(ctx, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

func fetchRecentActivity(ctx context.Context, students *mongo.Collection) ([]ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(10).
		SetProjection(bson.M{
			"name": 1, "course": 1, "status": 1, "admitted": 1,
			"created_at": 1, "fee": 1, "phone": 1, "email": 1, "notes": 1,
		})

	cur, err := students.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	activity := []ActivityEntry{}
	if err := cur.All(ctx, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// fetchUpcomingReminders returns at most five flagged records whose
// reminder date has not yet passed, soonest first.
func fetchUpcomingReminders(ctx context.Context, students *mongo.Collection, now time.Time) ([]ReminderEntry, error) {
	filter := bson.M{
		"remind":        true,
		"reminder_date": bson.M{"$gte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "reminder_date", Value: 1}}).
		SetLimit(5).
		SetProjection(bson.M{"name": 1, "reminder_date": 1, "course": 1})

	cur, err := students.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reminders := []ReminderEntry{}
	if err := cur.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func fetchCourseNames(ctx context.Context, courses *mongo.Collection) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := courses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}

// fetchCourseDistribution counts records per course name, then left-joins
// against the catalog: every catalog name appears (zero when unreferenced),
// and record course strings matching no catalog name are dropped from this
// list only. Sorted by count descending.
func fetchCourseDistribution(ctx context.Context, students *mongo.Collection, catalog []string) ([]CourseCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$course", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := students.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Course string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	byCourse := make(map[string]int64, len(rows))
	for _, r := range rows {
		if r.Course != "" {
			byCourse[r.Course] = r.Count
		}
	}

	dist := make([]CourseCount, 0, len(catalog))
	for _, name := range catalog {
		dist = append(dist, CourseCount{Name: name, Count: byCourse[name]})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist, nil
}

// fetchEngagementTrend buckets records created since the window start by
// ISO week number, then relabels the buckets positionally so the chart's
// x-axis reads "Week 1".."Week N". An empty window yields a fixed
// five-bucket zero series so the caller always has renderable data.
func fetchEngagementTrend(ctx context.Context, students *mongo.Collection, since time.Time) ([]TrendPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$week": "$created_at"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := students.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Week  int32 `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return placeholderTrend(), nil
	}

	trend := make([]TrendPoint, 0, len(rows))
	for i, r := range rows {
		trend = append(trend, TrendPoint{
			Name:  "Week " + strconv.Itoa(i+1),
			Value: r.Count,
		})
	}
	return trend, nil
}

func placeholderTrend() []TrendPoint {
	trend := make([]TrendPoint, 5)
	for i := range trend {
		trend[i] = TrendPoint{Name: "Week " + strconv.Itoa(i+1)}
	}
	return trend
}
