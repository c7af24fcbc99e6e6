package classify

// DefaultEntries returns the built-in keyword table. Order matters: it is
// the match priority when one purchase text could belong to several apps.
func DefaultEntries() []Entry {
	return []Entry{
		{App: "트릭컬 리바이브", Keywords: []string{"트릭컬 리바이브", "트릭컬"}},
		{App: "명조:워더링 웨이브", Keywords: []string{"명조:워더링 웨이브", "명조", "Wuthering Waves"}},
		{App: "가디언 테일즈", Keywords: []string{"가디언 테일즈"}},
		{App: "쿠키런: 오븐브레이크", Keywords: []string{"쿠키런: 오븐브레이크"}},
		{App: "블루 아카이브", Keywords: []string{"블루 아카이브", "Blue Archive"}},
		{App: "원신", Keywords: []string{"원신", "Genshin Impact"}},
		{App: "마비노기 모바일", Keywords: []string{"마비노기 모바일", "마비노기M"}},
		{App: "붕괴: 스타레일", Keywords: []string{"붕괴: 스타레일", "붕괴스타레일", "붕괴:스타레일"}},
		{App: "승리의 여신: 니케", Keywords: []string{"승리의 여신: 니케", "니케", "승리의 여신:니케", "GODDESS OF VICTORY: NIKKE"}},
		{App: "쿠키런: 킹덤", Keywords: []string{"쿠키런: 킹덤", "쿠키런 킹덤", "쿠키런킹덤", "쿠키런:킹덤"}},
		{App: "명일방주", Keywords: []string{"명일방주"}},
		{App: "Limbus Company", Keywords: []string{"Limbus Company", "림버스 컴퍼니", "림버스컴퍼니"}},
		{App: "페이트/그랜드 오더", Keywords: []string{"페이트/그랜드 오더", "페그오", "Fate/Grand Order"}},
		{App: "에픽세븐", Keywords: []string{"에픽세븐", "에픽 세븐"}},
		{App: "우마무스메 프리티 더비", Keywords: []string{"우마무스메", "우마무스메 프리티 더비", "우마무스메: 프리티 더비", "우마무스메프리티더비"}},
		{App: "브라운더스트2", Keywords: []string{"브라운더스트2", "브라운더스트 2", "브라운더스트II", "브라운더스트 II"}},
		{App: "소녀전선2: 망명", Keywords: []string{"소녀전선2", "소녀전선 2", "소녀전선2: 망명", "소녀전선2 망명", "소녀전선 망명"}},
		{App: "로스트 소드", Keywords: []string{"로스트 소드", "Lost Sword"}},
		{App: "프린세스 커넥트! Re:Dive", Keywords: []string{"프린세스 커넥트", "프린세스 커넥트! Re:Dive", "프린세스커넥트", "프린세스커넥트!Re:Dive"}},
		{App: "붕괴3rd", Keywords: []string{"붕괴3rd", "붕괴 3rd", "붕괴3", "붕괴 3"}},
		{App: "젠레스 존 제로", Keywords: []string{"젠레스 존 제로", "젠레스존제로", "Zenless Zone Zero", "ZenlessZoneZero"}},
	}
}

// DefaultTable builds a fresh table from the built-in entries.
func DefaultTable() *Table {
	return NewTable(DefaultEntries())
}
