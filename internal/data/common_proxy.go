package data

import (
	"fmt"

	"github.com/Dorschm/stellar-sub001/internal/locker"
	"github.com/Dorschm/stellar-sub001/pkg/db"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// commonProxy :
// Intended as a common wrapper to access the main DB through a
// convenience way. It holds most of the common resources needed
// to access the DB and notify errors/information to the caller
// about processes that may occur while fetching data. This
// helps hiding the complexity of how the data is laid out in
// the DB and the precise name of tables from the rest of the
// application.
// The following link contains useful information on the
// paradigm we're following with this object:
// https://www.reddit.com/r/golang/comments/9i5cpg/good_approach_to_interacting_with_databases/
//
// The `dbase` is the database proxy wrapped by this object.
//
// The `log` allows to perform display to the user so as to
// inform of potential issues and debug information to the
// outside world.
//
// The `lock` allows to lock specific resources when some data
// should be mutated. It serializes writes to a single row (a
// planet or a player) issued through the same proxy without
// locking the whole table.
type commonProxy struct {
	dbase db.Proxy
	log   logger.Logger
	lock  *locker.ConcurrentLocker
}

// newCommonProxy :
// Performs the creation of a new common proxy from the input
// database and logger.
//
// The `dbase` defines the main DB proxy that should be wrapped
// by this object.
//
// The `log` defines the logger allowing to notify errors or
// info to the user.
//
// Returns the created object.
func newCommonProxy(dbase db.Proxy, log logger.Logger) commonProxy {
	return commonProxy{
		dbase: dbase,
		log:   log,
		lock:  locker.NewConcurrentLocker(log),
	}
}

// performWithLock :
// Used to execute the specified operation on the internal DB
// while making sure that the lock on the specified ID is
// acquired and released when needed.
//
// The `resource` represents an identifier of the resource to
// access with the operation: this method makes sure that a
// lock on this resource is created and handled so as to ensure
// that a single process is mutating it at any time.
//
// The `op` represents the operation to perform on the DB which
// should be protected with a lock.
//
// Returns any error occurring during the process.
func (cp commonProxy) performWithLock(resource string, op func() error) error {
	if resource == "" {
		return fmt.Errorf("cannot perform operation for invalid empty resource id")
	}

	resLock := cp.lock.Acquire(resource)
	defer cp.lock.Release(resLock)

	var err error
	var errRelease error

	func() {
		resLock.Lock()
		defer func() {
			if rawErr := recover(); rawErr != nil {
				err = fmt.Errorf("error occurred while executing locked operation (err: %v)", rawErr)
			}
			errRelease = resLock.Release()
		}()

		err = op()
	}()

	if errRelease != nil {
		return fmt.Errorf("could not release locker protecting resource \"%s\" (err: %v)", resource, errRelease)
	}

	return err
}
