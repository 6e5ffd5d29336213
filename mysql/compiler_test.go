package mysql_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tinywasm/ftsearch/mysql"
	"github.com/tinywasm/ftsearch/orm"
)

type post struct{}

func (post) TableName() string { return "posts" }
func (post) Schema() []orm.Field {
	return []orm.Field{
		{Name: "id", Type: orm.TypeInt64, Constraints: orm.ConstraintPK},
		{Name: "title", Type: orm.TypeText},
	}
}
func (post) Values() []any   { return []any{int64(1), "hello"} }
func (post) Pointers() []any { return nil }

func compile(t *testing.T, q orm.Query) orm.Plan {
	t.Helper()
	plan, err := mysql.New().Compile(q, post{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return plan
}

func TestQuoteName(t *testing.T) {
	c := mysql.New()
	tests := map[string]string{
		"posts":     "`posts`",
		"`posts`":   "`posts`",
		"we`ird":    "`we``ird`",
		"full text": "`full text`",
		"`a``b`":    "`a``b`",
		"`a`b`":     "```a``b```",
	}
	for in, want := range tests {
		if got := c.QuoteName(in); got != want {
			t.Errorf("QuoteName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompileSelect(t *testing.T) {
	t.Run("qualified columns and where", func(t *testing.T) {
		plan := compile(t, orm.Query{
			Action:     orm.ActionReadOne,
			Table:      "posts",
			Columns:    []string{"posts.id", "posts.title"},
			Conditions: []orm.Condition{orm.Eq("id", 1)},
			Limit:      1,
		})
		want := "SELECT `posts`.`id`, `posts`.`title` FROM `posts` WHERE `posts`.`id` = ? LIMIT 1"
		if plan.Query != want {
			t.Errorf("got  %s\nwant %s", plan.Query, want)
		}
		if !reflect.DeepEqual(plan.Args, []any{1}) {
			t.Errorf("unexpected args %v", plan.Args)
		}
		if plan.Mode != orm.ActionReadOne {
			t.Errorf("unexpected mode %v", plan.Mode)
		}
	})

	t.Run("schema columns when none given", func(t *testing.T) {
		plan := compile(t, orm.Query{Action: orm.ActionReadAll, Table: "posts"})
		if plan.Query != "SELECT `posts`.`id`, `posts`.`title` FROM `posts`" {
			t.Errorf("unexpected query %s", plan.Query)
		}
	})

	t.Run("aliased joins", func(t *testing.T) {
		plan := compile(t, orm.Query{
			Action:  orm.ActionReadAll,
			Table:   "posts",
			Columns: []string{"posts.id", "authors.name", "authors_2.name"},
			Joins: []orm.Join{
				{Relation: "author", Table: "authors", Alias: "authors", Column: "author_id", RefColumn: "id"},
				{Relation: "editor", Table: "authors", Alias: "authors_2", Column: "editor_id", RefColumn: "id"},
			},
		})
		want := "SELECT `posts`.`id`, `authors`.`name`, `authors_2`.`name` FROM `posts` " +
			"JOIN `authors` ON `authors`.`id` = `posts`.`author_id` " +
			"JOIN `authors` AS `authors_2` ON `authors_2`.`id` = `posts`.`editor_id`"
		if plan.Query != want {
			t.Errorf("got  %s\nwant %s", plan.Query, want)
		}
	})

	t.Run("join, raw predicate, order and paging", func(t *testing.T) {
		plan := compile(t, orm.Query{
			Action:  orm.ActionReadAll,
			Table:   "posts",
			Columns: []string{"posts.id", "authors.name"},
			Joins:   []orm.Join{{Relation: "author", Table: "authors", Column: "author_id", RefColumn: "id"}},
			Conditions: []orm.Condition{
				orm.Raw("MATCH(`posts`.`title`, `authors`.`name`) AGAINST(? IN BOOLEAN MODE)", "+go -java"),
			},
			OrderBy: nil,
			Limit:   10,
			Offset:  20,
		})
		want := "SELECT `posts`.`id`, `authors`.`name` FROM `posts` " +
			"JOIN `authors` ON `authors`.`id` = `posts`.`author_id` " +
			"WHERE MATCH(`posts`.`title`, `authors`.`name`) AGAINST(? IN BOOLEAN MODE) " +
			"LIMIT 10 OFFSET 20"
		if plan.Query != want {
			t.Errorf("got  %s\nwant %s", plan.Query, want)
		}
		if !reflect.DeepEqual(plan.Args, []any{"+go -java"}) {
			t.Errorf("unexpected args %v", plan.Args)
		}
	})

	t.Run("search text is never interpolated", func(t *testing.T) {
		text := `"; DROP TABLE posts; --`
		plan := compile(t, orm.Query{
			Action:     orm.ActionReadAll,
			Table:      "posts",
			Conditions: []orm.Condition{orm.Raw("MATCH(`posts`.`title`) AGAINST(?)", text)},
		})
		if strings.Contains(plan.Query, "DROP") {
			t.Errorf("search text leaked into SQL: %s", plan.Query)
		}
		if len(plan.Args) != 1 || plan.Args[0] != text {
			t.Errorf("expected text as the only arg, got %v", plan.Args)
		}
	})

	t.Run("and/or folding", func(t *testing.T) {
		plan := compile(t, orm.Query{
			Action: orm.ActionReadAll,
			Table:  "posts",
			Conditions: []orm.Condition{
				orm.Eq("id", 1),
				orm.Or(orm.Like("title", "%go%")),
				orm.Gt("id", 0),
			},
		})
		want := "WHERE ((`posts`.`id` = ? OR `posts`.`title` LIKE ?) AND `posts`.`id` > ?)"
		if !strings.HasSuffix(plan.Query, want) {
			t.Errorf("got %s\nwant suffix %s", plan.Query, want)
		}
	})

	t.Run("order by and offset without limit", func(t *testing.T) {
		q := orm.Query{Action: orm.ActionReadAll, Table: "posts", Offset: 5}
		plan := compile(t, q)
		if !strings.HasSuffix(plan.Query, "LIMIT 18446744073709551615 OFFSET 5") {
			t.Errorf("unexpected query %s", plan.Query)
		}
	})
}

func TestCompileCount(t *testing.T) {
	plan := compile(t, orm.Query{
		Action:     orm.ActionCount,
		Table:      "posts",
		Joins:      []orm.Join{{Relation: "author", Table: "authors", Column: "author_id", RefColumn: "id"}},
		Conditions: []orm.Condition{orm.Raw("MATCH(`authors`.`name`) AGAINST(?)", "ada")},
	})
	want := "SELECT COUNT(*) FROM `posts` WHERE MATCH(`authors`.`name`) AGAINST(?)"
	if plan.Query != want {
		t.Errorf("got  %s\nwant %s", plan.Query, want)
	}
}

func TestCompileWrites(t *testing.T) {
	plan := compile(t, orm.Query{
		Action:  orm.ActionCreate,
		Table:   "posts",
		Columns: []string{"id", "title"},
		Values:  []any{int64(1), "hello"},
	})
	if plan.Query != "INSERT INTO `posts` (`id`,`title`) VALUES (?,?)" {
		t.Errorf("unexpected insert %s", plan.Query)
	}

	plan = compile(t, orm.Query{
		Action:     orm.ActionUpdate,
		Table:      "posts",
		Columns:    []string{"title"},
		Values:     []any{"bye"},
		Conditions: []orm.Condition{orm.Eq("id", 1)},
	})
	if plan.Query != "UPDATE `posts` SET `title` = ? WHERE `posts`.`id` = ?" {
		t.Errorf("unexpected update %s", plan.Query)
	}
	if !reflect.DeepEqual(plan.Args, []any{"bye", 1}) {
		t.Errorf("unexpected update args %v", plan.Args)
	}

	plan = compile(t, orm.Query{
		Action:     orm.ActionDelete,
		Table:      "posts",
		Conditions: []orm.Condition{orm.Neq("id", 2)},
	})
	if plan.Query != "DELETE FROM `posts` WHERE `posts`.`id` <> ?" {
		t.Errorf("unexpected delete %s", plan.Query)
	}
}

func TestCompileErrors(t *testing.T) {
	c := mysql.New()

	_, err := c.Compile(orm.Query{Action: orm.Action(99), Table: "posts"}, post{})
	if err == nil || !strings.Contains(err.Error(), mysql.ErrUnsupported.Error()) {
		t.Errorf("expected unsupported action error, got %v", err)
	}

	q := orm.Query{Action: orm.ActionReadAll, Table: "posts"}
	q.OrderBy = orderBy(t, "title", "SIDEWAYS")
	_, err = c.Compile(q, post{})
	if err == nil || !strings.Contains(err.Error(), mysql.ErrInvalidOrder.Error()) {
		t.Errorf("expected invalid order error, got %v", err)
	}
	if errors.Is(err, mysql.ErrUnsupported) {
		t.Error("order error must not be an unsupported error")
	}
}

// orderBy captures the Order a QB builds, since Order has no exported constructor.
func orderBy(t *testing.T, column, dir string) []orm.Order {
	t.Helper()
	rec := &recorder{}
	db := orm.New(nil, rec)
	db.Query(post{}).OrderBy(column, dir).SQL()
	return rec.last.OrderBy
}

type recorder struct{ last orm.Query }

func (r *recorder) Compile(q orm.Query, m orm.Model) (orm.Plan, error) {
	r.last = q
	return orm.Plan{}, nil
}
