package domain_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

func happyDistribution() domain.Probabilities {
	return domain.Probabilities{
		domain.EmotionHappiness: 0.9,
		domain.EmotionSadness:   0.02,
		domain.EmotionFear:      0.02,
		domain.EmotionAnger:     0.02,
		domain.EmotionNeutral:   0.02,
		domain.EmotionSurprise:  0.01,
		domain.EmotionDisgust:   0.01,
	}
}

func TestClassify(t *testing.T) {
	Convey("Given a distribution peaking at happiness", t, func() {
		probs := happyDistribution()

		Convey("When the upstream label is the top class", func() {
			e, confidence, err := domain.Classify("happiness", probs)

			Convey("Then the label and max score are returned", func() {
				So(err, ShouldBeNil)
				So(e, ShouldEqual, domain.EmotionHappiness)
				So(confidence, ShouldEqual, 0.9)
				So(confidence, ShouldEqual, probs.Max())
			})
		})

		Convey("When the upstream label is not the top class", func() {
			_, _, err := domain.Classify("sadness", probs)

			Convey("Then the distribution is rejected", func() {
				So(errors.Is(err, domain.ErrInvalidDistribution), ShouldBeTrue)
			})
		})

		Convey("When the upstream label is unknown", func() {
			_, _, err := domain.Classify("boredom", probs)

			Convey("Then the distribution is rejected", func() {
				So(errors.Is(err, domain.ErrInvalidDistribution), ShouldBeTrue)
			})
		})
	})

	Convey("Given two classes sharing the top score", t, func() {
		probs := domain.Probabilities{
			domain.EmotionAnger:   0.4,
			domain.EmotionNeutral: 0.4,
			domain.EmotionFear:    0.2,
		}

		Convey("Then either tied label is accepted as reported", func() {
			e, confidence, err := domain.Classify("neutral", probs)
			So(err, ShouldBeNil)
			So(e, ShouldEqual, domain.EmotionNeutral)
			So(confidence, ShouldEqual, 0.4)

			e, _, err = domain.Classify("anger", probs)
			So(err, ShouldBeNil)
			So(e, ShouldEqual, domain.EmotionAnger)
		})
	})
}

func TestProbabilitiesValidate(t *testing.T) {
	Convey("Given malformed distributions", t, func() {
		cases := map[string]domain.Probabilities{
			"empty":        {},
			"unknown":      {"boredom": 1},
			"negative":     {domain.EmotionFear: -0.1, domain.EmotionAnger: 1.1},
			"above one":    {domain.EmotionFear: 1.5},
			"sum too low":  {domain.EmotionFear: 0.5, domain.EmotionAnger: 0.3},
			"sum too high": {domain.EmotionFear: 0.7, domain.EmotionAnger: 0.7},
		}

		for name, probs := range cases {
			Convey("Then "+name+" is rejected", func() {
				So(errors.Is(probs.Validate(), domain.ErrInvalidDistribution), ShouldBeTrue)
			})
		}
	})

	Convey("Given a distribution with rounding noise", t, func() {
		probs := domain.Probabilities{domain.EmotionFear: 0.333, domain.EmotionAnger: 0.333, domain.EmotionNeutral: 0.333}

		Convey("Then it is accepted", func() {
			So(probs.Validate(), ShouldBeNil)
		})
	})

	Convey("Given a distribution naming a single class", t, func() {
		probs := domain.Probabilities{domain.EmotionHappiness: 1.0}

		Convey("Then the omitted classes are treated as absent, not as an error", func() {
			So(probs.Validate(), ShouldBeNil)

			e, confidence, err := domain.Classify("happiness", probs)
			So(err, ShouldBeNil)
			So(e, ShouldEqual, domain.EmotionHappiness)
			So(confidence, ShouldEqual, 1.0)
		})
	})
}

func TestValidationError(t *testing.T) {
	Convey("Given a validation error", t, func() {
		err := domain.NewValidationError("Password must be at least 6 characters")

		Convey("Then it matches ErrValidation and keeps its reason", func() {
			So(errors.Is(err, domain.ErrValidation), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Password must be at least 6 characters")
		})
	})
}
