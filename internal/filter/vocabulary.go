package filter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the tunable word-list side of the noise filter. The stopword
// list rides along here so one file configures both the filter and the
// keyword aggregation.
type Vocabulary struct {
	MinLength      int      `yaml:"min_length"`
	NoisePhrases   []string `yaml:"noise_phrases"`
	LowInfoGlyphs  string   `yaml:"low_info_glyphs"`
	DomainKeywords []string `yaml:"domain_keywords"`
	Stopwords      []string `yaml:"stopwords"`
}

// DefaultVocabulary is tuned for Korean-language camera review comments.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		MinLength: 10,
		NoisePhrases: []string{
			"잘 보고 갑니다", "잘봤습니다", "잘 봤습니다",
			"영상 감사합니다", "감사합니다", "감사해요",
			"굿", "좋아요", "좋은 영상", "쿠팡",
			"고맙습니다", "덕분에", "수고하셨습니다", "?",
		},
		LowInfoGlyphs: "ㅋㅎㅠㅜ🙏❤️💜💙💚💛🤍🤎🖤⭐✨🔥",
		DomainKeywords: []string{
			"af", "오토포커스", "노이즈", "색감", "화이트밸런스",
			"화질", "디테일", "iso", "셔터", "조리개",
			"연사", "동영상", "발열", "손떨림", "ois", "렌즈",
			"고감도", "dr", "다이내믹", "초점", "트래킹",
			"센서", "바디", "프레임", "필름", "사진", "촬영",
			"흔들림", "저조도", "후지", "캐논", "소니", "니콘",
		},
		Stopwords: []string{
			"영상", "리뷰", "카메라", "사진", "후기",
			"진짜", "정말", "조금", "거의", "보고",
			"이거", "저거", "그냥", "사용", "사용기",
			"유튜브", "채널", "구독", "감사", "설명",
		},
	}
}

// LoadVocabulary reads a vocabulary override from a yaml file. Fields absent
// from the file keep their default values.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return vocab, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	if vocab.MinLength <= 0 {
		vocab.MinLength = DefaultVocabulary().MinLength
	}

	return vocab, nil
}

func (v Vocabulary) StopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(v.Stopwords))
	for _, w := range v.Stopwords {
		set[w] = struct{}{}
	}
	return set
}
