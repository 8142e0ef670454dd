package db

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

//DocumentKey is the store key holding the serialized Document
const DocumentKey = "sportiva_2k26_db"

var (
	lastModifiedKey    = DocumentKey + ".last_modified"
	currentRevisionKey = DocumentKey + ".current_revision"
)

func revisionKey(id int32) string {
	return fmt.Sprintf("%s.revision.%d", DocumentKey, id)
}

func encodeDocument(d *Document) (string, error) {
	//keep empty lists as [] so stored documents stay readable by other clients
	c := *d
	if c.Events == nil {
		c.Events = []Event{}
	}
	if c.Results == nil {
		c.Results = []Result{}
	}

	buf, err := json.Marshal(&c)
	if err != nil {
		return "", &Error{Err: err, Description: "Couldn't encode Document"}
	}
	return string(buf), nil
}

func decodeDocument(data string) (*Document, error) {
	d := new(Document)
	if err := json.Unmarshal([]byte(data), d); err != nil {
		return nil, &Error{Err: err, Description: "Couldn't decode Document"}
	}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Results == nil {
		d.Results = []Result{}
	}
	return d, nil
}

func encodeRevision(r *Revision) (string, error) {
	buf, err := json.Marshal(r)
	if err != nil {
		return "", &Error{Err: err, Description: fmt.Sprintf("Couldn't encode Revision(%d)", r.ID)}
	}
	return string(buf), nil
}

func decodeRevision(data string) (*Revision, error) {
	r := new(Revision)
	if err := json.Unmarshal([]byte(data), r); err != nil {
		return nil, &Error{Err: err, Description: "Couldn't decode Revision"}
	}
	return r, nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(data string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, data)
	if err != nil {
		return t, &Error{Err: err, Description: fmt.Sprintf("Couldn't decode time(%s)", data)}
	}
	return t, nil
}

func encodeInt(i int32) string {
	return strconv.FormatInt(int64(i), 10)
}

func decodeInt(data string) (int32, error) {
	i, err := strconv.ParseInt(data, 10, 32)
	if err != nil {
		return 0, &Error{Err: err, Description: fmt.Sprintf("Couldn't decode int(%s)", data)}
	}
	return int32(i), nil
}
