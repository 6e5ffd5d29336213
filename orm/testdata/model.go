package blog

import "time"

type Author struct {
	ID    int64  `db:"pk"`
	Name  string `db:"not_null,fulltext"`
	Email string `db:"unique"`
}

type Post struct {
	ID       int64  `db:"pk"`
	Title    string `db:"fulltext"`
	Body     string `db:"fulltext"`
	AuthorID int64  `db:"ref=authors,fulltext=name"`
	Comments []Comment
	draft    bool
}

type Comment struct {
	ID     string `db:"pk"`
	PostID int64  `db:"ref=posts:id"`
	Text   string
}

type Review struct {
	ID       int64 `db:"pk"`
	PostID   int64 `db:"ref=posts,rel=subject,fulltext=summary"`
	Rating   float64
	Internal string `db:"-"`
}

type Stamped struct {
	ID        int64
	CreatedAt time.Time
	Ch        chan int
}

type BadScore struct {
	ID    int64
	Score float64 `db:"fulltext"`
}

type BadRelatedSearch struct {
	ID   int64
	Name string `db:"fulltext=title"`
}

type BadAutoInc struct {
	ID string `db:"autoincrement"`
}
