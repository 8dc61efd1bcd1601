package domain_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

func prediction(e domain.Emotion, confidence float64) domain.Prediction {
	return domain.Prediction{Emotion: e, Confidence: confidence}
}

func TestSummarize(t *testing.T) {
	Convey("Given a user's predictions", t, func() {
		preds := []domain.Prediction{
			prediction(domain.EmotionHappiness, 0.9),
			prediction(domain.EmotionSadness, 0.6),
			prediction(domain.EmotionHappiness, 0.75),
		}

		Convey("When summarizing", func() {
			stats := domain.Summarize(preds)

			Convey("Then totals and distribution are counted", func() {
				So(stats.TotalReports, ShouldEqual, len(preds))
				So(stats.EmotionDistribution[domain.EmotionHappiness], ShouldEqual, 2)
				So(stats.EmotionDistribution[domain.EmotionSadness], ShouldEqual, 1)
			})

			Convey("And average confidence is a one-decimal percentage", func() {
				So(stats.AverageConfidence, ShouldEqual, 75.0)
			})

			Convey("And the most frequent emotion wins", func() {
				So(stats.MostCommonEmotion, ShouldEqual, domain.EmotionHappiness)
			})
		})
	})

	Convey("Given a tie between emotions", t, func() {
		preds := []domain.Prediction{
			prediction(domain.EmotionSurprise, 0.5),
			prediction(domain.EmotionAnger, 0.5),
			prediction(domain.EmotionSurprise, 0.5),
			prediction(domain.EmotionAnger, 0.5),
		}

		Convey("Then the lexically smallest label is chosen", func() {
			So(domain.Summarize(preds).MostCommonEmotion, ShouldEqual, domain.EmotionAnger)
		})
	})

	Convey("Given confidences that need rounding", t, func() {
		preds := []domain.Prediction{
			prediction(domain.EmotionFear, 0.8123),
			prediction(domain.EmotionFear, 0.6001),
		}

		Convey("Then the average is rounded to one decimal", func() {
			So(domain.Summarize(preds).AverageConfidence, ShouldEqual, 70.6)
		})
	})

	Convey("Given no predictions", t, func() {
		stats := domain.Summarize(nil)

		Convey("Then the summary is empty", func() {
			So(stats.TotalReports, ShouldEqual, 0)
			So(stats.MostCommonEmotion, ShouldEqual, domain.Emotion(""))
			So(stats.EmotionDistribution, ShouldBeEmpty)
		})
	})
}

func TestStatisticsJSON(t *testing.T) {
	Convey("Given summarized statistics", t, func() {
		stats := domain.Summarize([]domain.Prediction{
			prediction(domain.EmotionHappiness, 0.9),
			prediction(domain.EmotionSadness, 0.6),
		})

		Convey("When encoded", func() {
			raw, err := json.Marshal(stats)
			So(err, ShouldBeNil)

			Convey("Then averageConfidence is a JSON number", func() {
				So(string(raw), ShouldContainSubstring, `"averageConfidence":75`)
				So(string(raw), ShouldNotContainSubstring, `"averageConfidence":"`)
			})
		})
	})
}
